package conversions

import (
	"io"

	"github.com/JaimeStill/doc-convert/internal/documents"
)

// Output filenames suggested to clients.
const (
	SplitFilename = "split_pdfs.zip"
	MergeFilename = "merged.pdf"
)

// Content types of conversion outputs.
const (
	ContentTypePDF = "application/pdf"
	ContentTypeZip = "application/zip"
)

// Upload is a single client supplied file. It is consumed by one operation.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// Result describes an output file written into the request scope.
// Key is the scope path of the file.
type Result struct {
	Key         string
	Filename    string
	ContentType string
	Size        int64
	Pages       int
	Skipped     []documents.Rejection
}
