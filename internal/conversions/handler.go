package conversions

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/JaimeStill/doc-convert/internal/documents"
	"github.com/JaimeStill/doc-convert/pkg/handlers"
	"github.com/JaimeStill/doc-convert/pkg/routes"
	"github.com/JaimeStill/doc-convert/pkg/storage"
)

// Multipart parts beyond this size are spooled to disk by net/http.
const formMemory int64 = 8 << 20

// SkippedRangesHeader lists the page range tokens a split ignored.
const SkippedRangesHeader = "X-Skipped-Ranges"

// Handler provides HTTP handlers for the conversion endpoints.
type Handler struct {
	sys           System
	storage       storage.System
	maxUploadSize int64
	logger        *slog.Logger
}

// NewHandler creates a conversions HTTP handler.
// Request bodies larger than maxUploadSize are rejected with 413.
func NewHandler(sys System, store storage.System, maxUploadSize int64, logger *slog.Logger) *Handler {
	return &Handler{
		sys:           sys,
		storage:       store,
		maxUploadSize: maxUploadSize,
		logger:        logger.With("handler", "conversions"),
	}
}

// Routes returns the route group for the conversion endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Conversions"},
		Description: "Image to PDF conversion, PDF splitting, and PDF merging",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/convert", Handler: h.Convert, OpenAPI: Spec.Convert},
			{Method: "POST", Pattern: "/split", Handler: h.Split, OpenAPI: Spec.Split},
			{Method: "POST", Pattern: "/merge", Handler: h.Merge, OpenAPI: Spec.Merge},
		},
	}
}

// Convert handles POST /convert, returning the uploaded image as a PDF.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r, ErrNoFile); err != nil {
		h.respondError(w, err, "")
		return
	}
	defer r.MultipartForm.RemoveAll()

	fh, err := formFile(r.MultipartForm, "file")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	upload, closeUpload, err := openUpload(fh)
	if err != nil {
		h.respondError(w, err, "Error reading upload")
		return
	}
	defer closeUpload()

	scope := h.storage.Scope()
	defer scope.Release()

	result, err := h.sys.Convert(r.Context(), scope, upload)
	if err != nil {
		h.respondError(w, err, "Error converting image to PDF")
		return
	}

	h.respondFile(w, r, scope, result)
}

// Split handles POST /split, returning a zip archive of per-page or
// per-range documents cut from the uploaded PDF.
func (h *Handler) Split(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r, ErrNoFile); err != nil {
		h.respondError(w, err, "")
		return
	}
	defer r.MultipartForm.RemoveAll()

	fh, err := formFile(r.MultipartForm, "file")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	opts := documents.SplitOptions{
		Mode:   documents.SplitMode(r.FormValue("split_type")),
		Ranges: r.FormValue("page_range"),
	}

	upload, closeUpload, err := openUpload(fh)
	if err != nil {
		h.respondError(w, err, "Error reading upload")
		return
	}
	defer closeUpload()

	scope := h.storage.Scope()
	defer scope.Release()

	result, err := h.sys.Split(r.Context(), scope, upload, opts)
	if err != nil {
		h.respondError(w, err, "Error processing PDF")
		return
	}

	h.respondFile(w, r, scope, result)
}

// Merge handles POST /merge, returning the uploaded PDFs concatenated in
// the order they were sent.
func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r, ErrNoFiles); err != nil {
		h.respondError(w, err, "")
		return
	}
	defer r.MultipartForm.RemoveAll()

	fhs := r.MultipartForm.File["files[]"]
	if len(fhs) == 0 {
		if _, ok := r.MultipartForm.Value["files[]"]; ok {
			h.respondError(w, ErrNoFilesSelected, "")
		} else {
			h.respondError(w, ErrNoFiles, "")
		}
		return
	}

	uploads := make([]Upload, 0, len(fhs))
	for _, fh := range fhs {
		upload, closeUpload, err := openUpload(fh)
		if err != nil {
			h.respondError(w, err, "Error reading upload")
			return
		}
		defer closeUpload()
		uploads = append(uploads, upload)
	}

	scope := h.storage.Scope()
	defer scope.Release()

	result, err := h.sys.Merge(r.Context(), scope, uploads)
	if err != nil {
		h.respondError(w, err, "Error merging PDFs")
		return
	}

	h.respondFile(w, r, scope, result)
}

// parseForm caps the request body and parses it as multipart form data.
// A request that is not multipart is reported as missing.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request, missing error) error {
	if r.ContentLength > h.maxUploadSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, r.ContentLength)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	err := r.ParseMultipartForm(formMemory)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return fmt.Errorf("%w: limit %d bytes", ErrFileTooLarge, tooLarge.Limit)
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		return missing
	default:
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
}

// respondError writes err with its mapped status. Server errors are
// prefixed with a description of the failed operation.
func (h *Handler) respondError(w http.ResponseWriter, err error, prefix string) {
	status := MapHTTPStatus(err)
	if status >= http.StatusInternalServerError && prefix != "" {
		err = fmt.Errorf("%s: %w", prefix, err)
	}
	handlers.RespondError(w, h.logger, status, err)
}

func (h *Handler) respondFile(w http.ResponseWriter, r *http.Request, scope *storage.Scope, result *Result) {
	f, err := scope.Open(result.Key)
	if err != nil {
		h.respondError(w, err, "Error reading output")
		return
	}
	defer f.Close()

	if len(result.Skipped) > 0 {
		tokens := make([]string, len(result.Skipped))
		for i, rej := range result.Skipped {
			tokens[i] = rej.Token
		}
		w.Header().Set(SkippedRangesHeader, strings.Join(tokens, ","))
	}

	handlers.RespondFile(w, r, f, result.Filename, result.ContentType)
}

// formFile returns the first file in field. A field sent without a
// filename is reported as ErrNoFileSelected.
func formFile(form *multipart.Form, field string) (*multipart.FileHeader, error) {
	fhs := form.File[field]
	if len(fhs) == 0 {
		if _, ok := form.Value[field]; ok {
			return nil, ErrNoFileSelected
		}
		return nil, ErrNoFile
	}

	if fhs[0].Filename == "" {
		return nil, ErrNoFileSelected
	}

	return fhs[0], nil
}

func openUpload(fh *multipart.FileHeader) (Upload, func() error, error) {
	f, err := fh.Open()
	if err != nil {
		return Upload{}, nil, fmt.Errorf("open upload: %w", err)
	}

	return Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Reader:   f,
	}, f.Close, nil
}
