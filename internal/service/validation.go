package service

import (
	"context"
	"fmt"
	"html"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"github.com/petlovers/community-server/internal/logger"
	"github.com/petlovers/community-server/internal/media"
	"github.com/petlovers/community-server/models"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)
	phoneRe    = regexp.MustCompile(`^\+?[\d\s\-()]{7,20}$`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
)

const minPasswordLength = 8

// validEmail applies the standard email-shape check.
func validEmail(email string) bool {
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// validPhone accepts digits, spaces, dashes and parentheses with an
// optional leading plus, 7-20 characters. Empty is valid: phone is
// optional everywhere it appears.
func validPhone(phone string) bool {
	return phone == "" || phoneRe.MatchString(phone)
}

// sanitizeText strips markup from free-text form fields before they are
// stored: tags are removed and the remainder is entity-escaped.
func sanitizeText(s string) string {
	return html.EscapeString(tagRe.ReplaceAllString(strings.TrimSpace(s), ""))
}

// parseAge coerces a submitted age to a non-negative integer, defaulting
// to 0 for blanks, garbage and negatives.
func parseAge(s string) int {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < 0 {
		return 0
	}

	return age
}

// petAt reads index i of the parallel pet form arrays, tolerating
// different slice lengths.
func petAt[T any](values []T, i int) T {
	var zero T
	if i < len(values) {
		return values[i]
	}

	return zero
}

// processPets walks the parallel pet form arrays and builds the fresh pet
// list. A blank name skips the whole index. Each index keeps its previous
// photo unless a new upload supersedes it, in which case the old file is
// removed. An upload failure is reported as an error and blocks the
// caller from advancing, but the remaining indexes are still processed.
func processPets(ctx context.Context, files MediaStore, previous []models.PetRecord, in models.PetsInput) ([]models.PetRecord, []string) {
	log := logger.FromContext(ctx)

	processed := make([]models.PetRecord, 0, len(in.Names))
	var errs []string

	for i := range in.Names {
		name := strings.TrimSpace(in.Names[i])
		if name == "" {
			continue
		}

		photo := ""
		if i < len(previous) {
			photo = previous[i].Photo
		}

		if upload := petAt(in.Photos, i); upload != nil {
			stored, err := files.Store(upload, media.CategoryPets)
			if err != nil {
				log.Err(err).Str("pet", name).Msg("pet photo upload rejected")
				errs = append(errs, fmt.Sprintf("Pet photo for %q failed. Use JPG/PNG/GIF under 5 MB.", name))
			} else {
				if photo != "" {
					files.Remove(photo, media.CategoryPets)
				}
				photo = stored
			}
		}

		processed = append(processed, models.PetRecord{
			Name:  sanitizeText(name),
			Breed: sanitizeText(petAt(in.Breeds, i)),
			Age:   parseAge(petAt(in.Ages, i)),
			Photo: photo,
		})
	}

	return processed, errs
}
