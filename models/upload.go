package models

import "io"

// FileUpload is the transport-independent view of one uploaded file that
// the media manager validates and persists. HTTP handlers build it from a
// multipart file header; tests build it from in-memory bytes.
//
// A nil *FileUpload means no file was supplied, which is not an error:
// the caller decides whether the upload was required.
type FileUpload struct {
	// Name is the client-declared original filename. Only its extension
	// is trusted, and only after the content has been sniffed.
	Name string

	// Size is the declared size of the upload in bytes.
	Size int64

	// Open returns a fresh reader over the uploaded bytes.
	Open func() (io.ReadCloser, error)

	// Err carries a transport-level upload failure detected before
	// validation (truncated body, aborted connection).
	Err error
}
