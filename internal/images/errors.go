// Package images converts raster images into single-page PDF documents.
// Images are flattened onto an opaque white background before encoding so
// transparent, grayscale, and paletted sources all produce plain RGB pages.
package images

import (
	"errors"
	"net/http"
)

// Domain errors for image conversion.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrImageTooLarge     = errors.New("image dimensions exceed limit")
	ErrConversionFailed  = errors.New("image conversion failed")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrImageTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, ErrConversionFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
