// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RegistrationDateLayout is the timestamp format used in the persisted
// users table for the registration_date column.
const RegistrationDateLayout = "2006-01-02 15:04:05"

// UserRecord represents one registered community member, one row of the
// users table. Username is globally unique and immutable after creation;
// every other field may be changed by a profile edit.
//
// PasswordHash holds an opaque bcrypt hash and must never leave the
// server process; it is excluded from JSON serialization.
type UserRecord struct {
	// Username is the unique account identifier, 3-20 alphanumeric
	// characters. Set once by the onboarding commit, never changed.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string `json:"-"`

	// FullName is the member's display name.
	FullName string `json:"full_name"`

	// Email is the member's contact address.
	Email string `json:"email"`

	// Phone is optional and loosely validated.
	Phone string `json:"phone"`

	// ProfilePhoto is the generated filename of the stored profile image
	// under the profiles upload category, or empty when none was uploaded.
	ProfilePhoto string `json:"profile_photo"`

	// Pets is the ordered list of pets owned by this member.
	Pets []PetRecord `json:"pets"`

	// RegistrationDate is set once when the onboarding commit creates
	// the record.
	RegistrationDate time.Time `json:"registration_date"`
}

// PetRecord is owned by exactly one UserRecord and never referenced
// elsewhere. A pet whose name trims to empty is dropped before persistence.
type PetRecord struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Age   int    `json:"age"`

	// Photo is the generated filename of the stored pet image under the
	// pets upload category, or empty.
	Photo string `json:"photo"`
}

// EncodePets serializes a pet list to the JSON form stored in the pets
// cell of the users table. A nil list encodes as the empty JSON array so
// the stored cell is never blank.
func EncodePets(pets []PetRecord) (string, error) {
	if pets == nil {
		pets = []PetRecord{}
	}

	encoded, err := json.Marshal(pets)
	if err != nil {
		return "", fmt.Errorf("error encoding pets: %w", err)
	}

	return string(encoded), nil
}

// DecodePets parses the pets cell of a users table row. An empty cell
// decodes as an empty list.
func DecodePets(cell string) ([]PetRecord, error) {
	if cell == "" {
		return []PetRecord{}, nil
	}

	var pets []PetRecord
	if err := json.Unmarshal([]byte(cell), &pets); err != nil {
		return nil, fmt.Errorf("error decoding pets: %w", err)
	}

	if pets == nil {
		pets = []PetRecord{}
	}

	return pets, nil
}
