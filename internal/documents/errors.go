// Package documents splits and merges PDF documents.
// It owns the page-range grammar used by range splits and writes split
// output as a Deflate-compressed zip archive.
package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrEmptyPageRange   = errors.New("no page ranges specified")
	ErrNoValidRanges    = errors.New("no valid page ranges")
	ErrMalformedRange   = errors.New("malformed page range")
	ErrRangeOutOfBounds = errors.New("page range out of bounds")
	ErrInvalidSplitMode = errors.New("invalid split type")
	ErrNoDocuments      = errors.New("no documents to merge")
	ErrInvalidDocument  = errors.New("document is not a valid PDF")
	ErrProcessingFailed = errors.New("document processing failed")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyPageRange),
		errors.Is(err, ErrNoValidRanges),
		errors.Is(err, ErrMalformedRange),
		errors.Is(err, ErrRangeOutOfBounds),
		errors.Is(err, ErrInvalidSplitMode),
		errors.Is(err, ErrNoDocuments):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
