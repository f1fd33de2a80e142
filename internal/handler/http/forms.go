package http

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/petlovers/community-server/models"
)

// parseForm parses the request body, spilling large multipart parts to
// temp files. Plain urlencoded bodies are accepted too so the wizard can
// be driven without file fields.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxMultipartMemory)
	}
	return r.ParseForm()
}

// formValues returns the repeated values for a form-array field. Both the
// bare name and the "name[]" spelling used by the HTML forms are accepted.
func formValues(r *http.Request, name string) []string {
	if values, ok := r.Form[name]; ok {
		return values
	}
	return r.Form[name+"[]"]
}

// fileField returns the single upload submitted under name, or nil when
// the field was absent or left empty.
func fileField(r *http.Request, name string) *models.FileUpload {
	if r.MultipartForm == nil {
		return nil
	}

	headers := r.MultipartForm.File[name]
	if len(headers) == 0 {
		headers = r.MultipartForm.File[name+"[]"]
	}
	if len(headers) == 0 {
		return nil
	}

	return uploadFromHeader(headers[0])
}

// fileFields returns the uploads for a repeated file field, keeping one
// slot per submitted part so indexes stay aligned with the other form
// arrays. Parts with an empty filename (a file input left blank) read as
// nil.
func fileFields(r *http.Request, name string) []*models.FileUpload {
	if r.MultipartForm == nil {
		return nil
	}

	headers := r.MultipartForm.File[name]
	if len(headers) == 0 {
		headers = r.MultipartForm.File[name+"[]"]
	}

	uploads := make([]*models.FileUpload, len(headers))
	for i, fh := range headers {
		uploads[i] = uploadFromHeader(fh)
	}

	return uploads
}

func uploadFromHeader(fh *multipart.FileHeader) *models.FileUpload {
	if fh == nil || fh.Filename == "" {
		return nil
	}

	return &models.FileUpload{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// petsInput collects the parallel pet form arrays into one input value.
func petsInput(r *http.Request) models.PetsInput {
	return models.PetsInput{
		Names:  formValues(r, "pet_name"),
		Breeds: formValues(r, "pet_breed"),
		Ages:   formValues(r, "pet_age"),
		Photos: fileFields(r, "pet_photo"),
	}
}
