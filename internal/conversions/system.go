package conversions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/doc-convert/internal/documents"
	"github.com/JaimeStill/doc-convert/internal/images"
	"github.com/JaimeStill/doc-convert/pkg/storage"
	"github.com/dustin/go-humanize"
)

// System defines the conversion operations. Every file an operation
// creates is registered with scope, so releasing the scope cleans up
// regardless of the outcome.
type System interface {
	// Convert renders a single image upload as a one-page PDF.
	Convert(ctx context.Context, scope *storage.Scope, upload Upload) (*Result, error)

	// Split cuts a PDF upload into a zip archive of smaller PDFs.
	Split(ctx context.Context, scope *storage.Scope, upload Upload, opts documents.SplitOptions) (*Result, error)

	// Merge concatenates PDF uploads in order.
	Merge(ctx context.Context, scope *storage.Scope, uploads []Upload) (*Result, error)
}

type system struct {
	images    *images.Converter
	documents documents.System
	logger    *slog.Logger
}

// New creates a conversion system over the image converter and document system.
func New(conv *images.Converter, docs documents.System, logger *slog.Logger) System {
	return &system{
		images:    conv,
		documents: docs,
		logger:    logger.With("system", "conversions"),
	}
}

func (s *system) Convert(ctx context.Context, scope *storage.Scope, upload Upload) (*Result, error) {
	if upload.Filename == "" {
		return nil, ErrNoFileSelected
	}
	if !images.IsSupported(upload.Filename) {
		return nil, fmt.Errorf(
			"%w: %q (supported: %s)",
			images.ErrUnsupportedFormat,
			filepath.Ext(upload.Filename),
			strings.Join(images.SupportedExtensions(), ", "),
		)
	}

	src, err := s.save(scope, upload)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	filename := outputName(upload.Filename, ".pdf")

	var conv *images.Result
	res, err := s.write(scope, filename, ContentTypePDF, func(w io.Writer) error {
		var err error
		conv, err = s.images.Convert(ctx, src, w)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Pages = 1

	s.logger.Info(
		"image converted",
		"scope", scope.ID(),
		"format", conv.Format,
		"width", conv.Width,
		"height", conv.Height,
		"size", humanize.Bytes(uint64(res.Size)),
	)

	return res, nil
}

func (s *system) Split(ctx context.Context, scope *storage.Scope, upload Upload, opts documents.SplitOptions) (*Result, error) {
	if upload.Filename == "" {
		return nil, ErrNoFileSelected
	}

	mode, err := documents.ParseSplitMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	opts.Mode = mode

	if mode == documents.SplitRange && strings.TrimSpace(opts.Ranges) == "" {
		return nil, documents.ErrEmptyPageRange
	}

	src, err := s.save(scope, upload)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var split *documents.SplitResult
	res, err := s.write(scope, SplitFilename, ContentTypeZip, func(w io.Writer) error {
		var err error
		split, err = s.documents.Split(ctx, src, opts, w)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Pages = split.Pages
	res.Skipped = split.Skipped

	s.logger.Info(
		"document split",
		"scope", scope.ID(),
		"mode", mode,
		"entries", len(split.Entries),
		"skipped", len(split.Skipped),
		"size", humanize.Bytes(uint64(res.Size)),
	)

	return res, nil
}

func (s *system) Merge(ctx context.Context, scope *storage.Scope, uploads []Upload) (*Result, error) {
	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}
	if uploads[0].Filename == "" {
		return nil, ErrNoFilesSelected
	}

	srcs := make([]io.ReadSeeker, 0, len(uploads))
	for _, upload := range uploads {
		src, err := s.save(scope, upload)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		srcs = append(srcs, src)
	}

	var merged *documents.MergeResult
	res, err := s.write(scope, MergeFilename, ContentTypePDF, func(w io.Writer) error {
		var err error
		merged, err = s.documents.Merge(ctx, srcs, w)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Pages = merged.Pages

	s.logger.Info(
		"documents merged",
		"scope", scope.ID(),
		"inputs", merged.Inputs,
		"pages", merged.Pages,
		"size", humanize.Bytes(uint64(res.Size)),
	)

	return res, nil
}

// save writes an upload into the scope and reopens it for reading.
func (s *system) save(scope *storage.Scope, upload Upload) (*os.File, error) {
	path, _, err := scope.Save(upload.Filename, upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	return scope.Open(path)
}

// write creates a scope file and fills it with fn.
func (s *system) write(scope *storage.Scope, filename, contentType string, fn func(io.Writer) error) (*Result, error) {
	out, err := scope.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	err = fn(out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(out.Name())
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}

	return &Result{
		Key:         out.Name(),
		Filename:    filename,
		ContentType: contentType,
		Size:        info.Size(),
	}, nil
}

// outputName replaces the extension of an uploaded filename.
func outputName(filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return storage.SanitizeFilename(base) + ext
}
