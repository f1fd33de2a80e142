package http

// User-facing messages produced at the transport layer. Wording is part
// of the UI contract and is kept stable.
const (
	msgInvalidCSRF         = "Invalid security token. Please refresh and try again."
	msgCredentialsRequired = "Please enter both username and password."
	msgLoginFailed         = "Invalid username or password."
	msgLoginRequired       = "Please log in to continue."
	msgServerError         = "Something went wrong. Please try again."
	msgBadRequestBody      = "Could not read the submitted form. Please try again."

	msgRegistrationComplete = "Registration complete! Welcome to the community – please log in."
	msgLoggedOut            = "You have been logged out successfully."
	msgProfileUpdated       = "Profile updated successfully."
	msgAccountDeleted       = "Your account has been deleted."
)
