package service

import (
	"github.com/petlovers/community-server/models"
)

// ─────────────────────────────────────────────
// Mock MediaStore
// ─────────────────────────────────────────────

// mockMediaStore implements MediaStore for unit tests. Each method field
// can be overridden per test case; the default Store accepts everything
// and hands back a deterministic filename.
type mockMediaStore struct {
	storeFn  func(upload *models.FileUpload, category string) (string, error)
	removeFn func(filename, category string) bool

	stored  []string
	removed []string
}

func (m *mockMediaStore) Store(upload *models.FileUpload, category string) (string, error) {
	if m.storeFn != nil {
		name, err := m.storeFn(upload, category)
		if err == nil {
			m.stored = append(m.stored, name)
		}
		return name, err
	}

	name := "img_stored_" + upload.Name
	m.stored = append(m.stored, name)
	return name, nil
}

func (m *mockMediaStore) Remove(filename, category string) bool {
	m.removed = append(m.removed, filename)
	if m.removeFn != nil {
		return m.removeFn(filename, category)
	}
	return true
}
