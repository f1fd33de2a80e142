package models

// CredentialsInput carries the step 1 form fields.
type CredentialsInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// PersonalInfoInput carries the step 2 form fields.
type PersonalInfoInput struct {
	FullName string
	Email    string
	Phone    string
}

// PhotoInput carries the optional step 3 profile photo upload.
type PhotoInput struct {
	Photo *FileUpload
}

// PetsInput carries the parallel step 4 form arrays. Names, Breeds and
// Ages are indexed together; Photos holds the optional upload for each
// index (nil when no file was chosen for that slot). The slices may have
// different lengths; missing entries read as empty.
type PetsInput struct {
	Names  []string
	Breeds []string
	Ages   []string
	Photos []*FileUpload
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Username string
	Password string
}

// ProfileUpdateInput carries the profile edit form: the mutable personal
// fields, an optional password change, an optional replacement profile
// photo, and the full pet list in step 4 form-array shape.
type ProfileUpdateInput struct {
	FullName        string
	Email           string
	Phone           string
	NewPassword     string
	ConfirmPassword string
	Photo           *FileUpload
	Pets            PetsInput
}
