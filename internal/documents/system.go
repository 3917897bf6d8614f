package documents

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// SplitMode selects how a document is divided.
type SplitMode string

const (
	SplitAll   SplitMode = "all"
	SplitRange SplitMode = "range"
)

// ParseSplitMode resolves a client supplied split type. Empty selects SplitAll.
func ParseSplitMode(s string) (SplitMode, error) {
	switch mode := SplitMode(strings.TrimSpace(s)); mode {
	case "":
		return SplitAll, nil
	case SplitAll, SplitRange:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q (must be all or range)", ErrInvalidSplitMode, s)
	}
}

// SplitOptions configures a split.
type SplitOptions struct {
	Mode   SplitMode
	Ranges string
}

// SplitResult describes a written archive.
type SplitResult struct {
	Entries []string
	Pages   int
	Skipped []Rejection
}

// MergeResult describes a merged document.
type MergeResult struct {
	Pages  int
	Inputs int
}

// System defines PDF split and merge operations.
type System interface {
	// PageCount opens src and returns its page count.
	// Returns ErrInvalidDocument if src is not a readable PDF.
	PageCount(ctx context.Context, src io.ReadSeeker) (int, error)

	// Split writes a zip archive of documents cut from src to w.
	// The source is validated before any archive byte is written.
	Split(ctx context.Context, src io.ReadSeeker, opts SplitOptions, w io.Writer) (*SplitResult, error)

	// Merge concatenates srcs in order and writes the result to w.
	// Every input is validated before any output is written.
	Merge(ctx context.Context, srcs []io.ReadSeeker, w io.Writer) (*MergeResult, error)
}

type system struct {
	logger *slog.Logger
}

// New creates a document system.
func New(logger *slog.Logger) System {
	disableConfigDir.Do(api.DisableConfigDir)

	return &system{
		logger: logger.With("system", "documents"),
	}
}

func (s *system) PageCount(ctx context.Context, src io.ReadSeeker) (count int, err error) {
	defer recoverProcessing(&err)

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	count, err = api.PageCount(src, model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if count < 1 {
		return 0, fmt.Errorf("%w: document has no pages", ErrInvalidDocument)
	}

	return count, nil
}

func (s *system) Split(ctx context.Context, src io.ReadSeeker, opts SplitOptions, w io.Writer) (res *SplitResult, err error) {
	defer recoverProcessing(&err)

	mode, err := ParseSplitMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	total, err := s.PageCount(ctx, src)
	if err != nil {
		return nil, err
	}

	var (
		selections []string
		names      []string
		skipped    []Rejection
		extracted  int
	)

	switch mode {
	case SplitAll:
		for page := 1; page <= total; page++ {
			selections = append(selections, strconv.Itoa(page))
			names = append(names, fmt.Sprintf("page_%d.pdf", page))
		}
		extracted = total
	case SplitRange:
		parsed, err := ParsePageRanges(opts.Ranges, total)
		if err != nil {
			return nil, err
		}
		for _, r := range parsed.Ranges {
			selections = append(selections, r.String())
			names = append(names, r.EntryName())
			extracted += r.Len()
		}
		skipped = parsed.Rejected
	}

	for _, rej := range skipped {
		s.logger.Warn("page range skipped", "range", rej.String())
	}

	archive := NewArchive(w)
	conf := model.NewDefaultConfiguration()

	for i, selection := range selections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry, _, err := archive.Create(names[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}

		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}

		if err := api.Trim(src, entry, []string{selection}, conf); err != nil {
			return nil, fmt.Errorf("%w: pages %s: %v", ErrProcessingFailed, selection, err)
		}
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	s.logger.Info(
		"document split",
		"mode", mode,
		"pages", total,
		"entries", len(selections),
		"extracted", extracted,
		"skipped", len(skipped),
	)

	return &SplitResult{
		Entries: archive.Entries(),
		Pages:   total,
		Skipped: skipped,
	}, nil
}

func (s *system) Merge(ctx context.Context, srcs []io.ReadSeeker, w io.Writer) (res *MergeResult, err error) {
	defer recoverProcessing(&err)

	if len(srcs) == 0 {
		return nil, ErrNoDocuments
	}

	total := 0
	for i, src := range srcs {
		count, err := s.PageCount(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("file %d: %w", i+1, err)
		}
		total += count
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, src := range srcs {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}

	if len(srcs) == 1 {
		if _, err := io.Copy(w, srcs[0]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	} else if err := api.MergeRaw(srcs, w, false, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	s.logger.Info("documents merged", "inputs", len(srcs), "pages", total)

	return &MergeResult{
		Pages:  total,
		Inputs: len(srcs),
	}, nil
}

func recoverProcessing(err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("%w: %v", ErrProcessingFailed, p)
	}
}
