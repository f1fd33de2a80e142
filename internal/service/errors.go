package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)

// User-facing form messages. Validation failures are collected per request
// and returned together so the user sees every problem at once.
const (
	MsgUsernameFormat  = "Username must be 3-20 alphanumeric characters."
	MsgUsernameTaken   = "That username is already taken. Please choose another."
	MsgPasswordLength  = "Password must be at least 8 characters."
	MsgPasswordsDiffer = "Passwords do not match."

	MsgFullNameRequired = "Full name is required."
	MsgEmailInvalid     = "A valid email address is required."
	MsgPhoneInvalid     = "Phone number format is invalid (digits, spaces, dashes, parentheses allowed)."

	MsgUploadFailed = "Upload failed. Please use a JPG, PNG, or GIF image under 5 MB."

	MsgUsernameTakenDuringFlow = "Sorry, that username was taken while you were registering. Please go back and choose another."
	MsgSaveFailed              = "Could not save your account. Please try again."

	MsgNewPasswordLength = "New password must be at least 8 characters."
	MsgProfileSaveFailed = "Failed to save profile. Please try again."
)
