package media

import "errors"

// Sentinel errors returned by [Manager.Store]. The handler layer collapses
// all of them into a single user-facing upload-failed message; the
// distinct values exist for logging and tests.
var (
	// ErrNoFileProvided is returned when Store is called without a file.
	// Absence of an upload is not a validation failure; callers decide
	// whether the upload was required before calling Store.
	ErrNoFileProvided = errors.New("no file provided")

	// ErrUploadFailed is returned on a transport-level upload failure
	// (truncated body, unreadable part).
	ErrUploadFailed = errors.New("upload failed")

	// ErrFileTooLarge is returned when the upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidFileType is returned when the sniffed content of the file
	// is not one of the allowed image formats. The client-declared type
	// and the extension are never trusted for this check.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrInvalidExtension is returned when the lower-cased file extension
	// is not allowed or does not match the sniffed content type.
	ErrInvalidExtension = errors.New("invalid file extension")
)
