// SPDX-License-Identifier: Apache-2.0

// Package media validates and persists uploaded binary images into
// per-category directories under a single uploads root, generating
// collision-free filenames, and deletes superseded or orphaned files.
package media

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/models"
)

// MaxFileSize is the upload size limit in bytes.
const MaxFileSize = 5 * 1024 * 1024

// Upload categories. Each category is a directory under the uploads root;
// a stored filename is only meaningful together with its category.
const (
	CategoryProfiles = "profiles"
	CategoryPets     = "pets"
)

// allowedMIMETypes is the exhaustive set of sniffed content types accepted
// by the validator.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// extensionMIME maps each allowed lower-cased extension to the content
// type it must carry. An extension whose sniffed type disagrees is
// rejected even though both would be acceptable on their own.
var extensionMIME = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// Manager validates uploads and persists them on the local filesystem.
// It is safe for concurrent use: generated names are unique per call and
// no shared state is mutated.
type Manager struct {
	root   string
	logger *logger.Logger
}

// NewManager constructs a [Manager] rooted at the given uploads directory.
// Category directories are created lazily on first store.
func NewManager(root string, logger *logger.Logger) *Manager {
	logger.Debug().Str("root", root).Msg("creating media manager")
	return &Manager{
		root:   root,
		logger: logger,
	}
}

// Store validates the upload and persists it under the category directory.
//
// Checks run in order: a file was provided, no transport error, size
// within [MaxFileSize], sniffed content type allowed, extension allowed
// and consistent with the sniffed type. Nothing is written until every
// check passes, so a failed upload leaves no partial file behind.
//
// On success the generated filename (unique within the category) is
// returned; the caller stores it on the owning record.
func (m *Manager) Store(upload *models.FileUpload, category string) (string, error) {
	if upload == nil {
		return "", ErrNoFileProvided
	}

	if upload.Err != nil {
		m.logger.Err(upload.Err).Str("name", upload.Name).Msg("transport-level upload error")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, upload.Err)
	}

	if upload.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	data, err := readUpload(upload)
	if err != nil {
		m.logger.Err(err).Str("name", upload.Name).Msg("error reading upload")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	// The declared size is client-controlled; recheck the actual bytes.
	if int64(len(data)) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	sniffed := http.DetectContentType(data)
	if !allowedMIMETypes[sniffed] {
		m.logger.Warn().Str("name", upload.Name).Str("sniffed", sniffed).Msg("rejecting upload: content type not allowed")
		return "", ErrInvalidFileType
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(upload.Name), "."))
	wantMIME, ok := extensionMIME[ext]
	if !ok {
		return "", ErrInvalidExtension
	}
	if wantMIME != sniffed {
		m.logger.Warn().Str("name", upload.Name).Str("ext", ext).Str("sniffed", sniffed).Msg("rejecting upload: extension does not match content")
		return "", ErrInvalidExtension
	}

	dir := filepath.Join(m.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Err(err).Str("dir", dir).Msg("error creating category directory")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	filename := generateFilename(ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		m.logger.Err(err).Str("filename", filename).Msg("error persisting upload")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return filename, nil
}

// Remove deletes a stored file from its category directory. The filename
// is resolved to its base name only, so a path-traversal component can
// never escape the category. Returns false without error semantics when
// the filename is empty or the file is absent.
func (m *Manager) Remove(filename, category string) bool {
	if filename == "" {
		return false
	}

	path := filepath.Join(m.root, category, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		return false
	}

	if err := os.Remove(path); err != nil {
		m.logger.Err(err).Str("path", path).Msg("error removing stored file")
		return false
	}

	return true
}

// readUpload drains the upload into memory, bounded just past the size
// limit so an oversized stream with a lying Size field is still caught.
func readUpload(upload *models.FileUpload) ([]byte, error) {
	reader, err := upload.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(io.LimitReader(reader, MaxFileSize+1))
}

// generateFilename builds a collision-resistant name from a time-ordered
// UUID plus the validated extension.
func generateFilename(ext string) string {
	token, err := uuid.NewV7()
	if err != nil {
		return "img_" + uuid.NewString() + "." + ext
	}

	return "img_" + token.String() + "." + ext
}
