package models

// StepState is the JSON envelope returned by wizard step endpoints. The
// rendering front end re-renders the form from Values and Errors; Redirect
// tells it where to navigate after a successful submit or a guard bounce.
type StepState struct {
	Step      int               `json:"step"`
	CSRFToken string            `json:"csrf_token,omitempty"`
	Values    map[string]any    `json:"values,omitempty"`
	Errors    []string          `json:"errors,omitempty"`
	Redirect  string            `json:"redirect,omitempty"`
	Flash     *FlashMessage     `json:"flash,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// FlashMessage is a one-shot notice stored in the session and cleared on
// first read. Kind follows the original contextual classes
// (success, danger, warning, info).
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// MembersPage is the member directory response.
type MembersPage struct {
	Members []MemberView  `json:"members"`
	Flash   *FlashMessage `json:"flash,omitempty"`
}

// ProfilePage is the profile edit surface response: the member's current
// record plus the token the edit form must post back.
type ProfilePage struct {
	Profile   MemberView    `json:"profile"`
	CSRFToken string        `json:"csrf_token"`
	Errors    []string      `json:"errors,omitempty"`
	Flash     *FlashMessage `json:"flash,omitempty"`
}

// MemberView is the directory representation of one member: a UserRecord
// with the credential material stripped.
type MemberView struct {
	Username         string      `json:"username"`
	FullName         string      `json:"full_name"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	ProfilePhoto     string      `json:"profile_photo"`
	Pets             []PetRecord `json:"pets"`
	RegistrationDate string      `json:"registration_date"`
}

// MemberViewOf strips a UserRecord down to its directory representation.
func MemberViewOf(record UserRecord) MemberView {
	pets := record.Pets
	if pets == nil {
		pets = []PetRecord{}
	}

	registered := ""
	if !record.RegistrationDate.IsZero() {
		registered = record.RegistrationDate.Format(RegistrationDateLayout)
	}

	return MemberView{
		Username:         record.Username,
		FullName:         record.FullName,
		Email:            record.Email,
		Phone:            record.Phone,
		ProfilePhoto:     record.ProfilePhoto,
		Pets:             pets,
		RegistrationDate: registered,
	}
}
