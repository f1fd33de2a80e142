package store

import (
	"time"

	"github.com/petlovers/community-server/models"
)

// tableHeader names the eight columns of the users table in their fixed
// order. The order is part of the on-disk format and must be preserved
// across rewrites.
var tableHeader = []string{
	"username",
	"password",
	"full_name",
	"email",
	"phone",
	"profile_photo",
	"pets",
	"registration_date",
}

// recordToRow serializes one UserRecord into a table row, encoding the
// pet list into the pets cell.
func recordToRow(record models.UserRecord) ([]string, error) {
	pets, err := models.EncodePets(record.Pets)
	if err != nil {
		return nil, err
	}

	registered := ""
	if !record.RegistrationDate.IsZero() {
		registered = record.RegistrationDate.Format(models.RegistrationDateLayout)
	}

	return []string{
		record.Username,
		record.PasswordHash,
		record.FullName,
		record.Email,
		record.Phone,
		record.ProfilePhoto,
		pets,
		registered,
	}, nil
}

// rowToRecord parses one table row. The caller guarantees at least eight
// fields. Unparseable pets or timestamp cells degrade to the zero value
// instead of failing the whole read; the row tolerance mirrors the
// skip-short-rows rule.
func rowToRecord(row []string) models.UserRecord {
	pets, err := models.DecodePets(row[6])
	if err != nil {
		pets = []models.PetRecord{}
	}

	registered, err := time.Parse(models.RegistrationDateLayout, row[7])
	if err != nil {
		registered = time.Time{}
	}

	return models.UserRecord{
		Username:         row[0],
		PasswordHash:     row[1],
		FullName:         row[2],
		Email:            row[3],
		Phone:            row[4],
		ProfilePhoto:     row[5],
		Pets:             pets,
		RegistrationDate: registered,
	}
}
