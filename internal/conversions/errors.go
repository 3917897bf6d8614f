// Package conversions runs convert, split, and merge requests end to end.
// Uploads are written into a per-request storage scope, handed to the image
// or document systems, and the output is streamed back before the scope is
// released.
package conversions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/doc-convert/internal/documents"
	"github.com/JaimeStill/doc-convert/internal/images"
)

// Request validation errors.
var (
	ErrNoFile          = errors.New("No file uploaded")
	ErrNoFileSelected  = errors.New("No file selected")
	ErrNoFiles         = errors.New("No files uploaded")
	ErrNoFilesSelected = errors.New("No files selected")
	ErrFileTooLarge    = errors.New("File exceeds the upload size limit")
	ErrInvalidForm     = errors.New("Invalid multipart form")
)

// MapHTTPStatus maps request, image, and document errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoFile),
		errors.Is(err, ErrNoFileSelected),
		errors.Is(err, ErrNoFiles),
		errors.Is(err, ErrNoFilesSelected),
		errors.Is(err, ErrInvalidForm):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, images.ErrUnsupportedFormat),
		errors.Is(err, images.ErrImageTooLarge):
		return images.MapHTTPStatus(err)
	default:
		return documents.MapHTTPStatus(err)
	}
}
