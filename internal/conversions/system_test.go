package conversions_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/JaimeStill/doc-convert/internal/conversions"
	"github.com/JaimeStill/doc-convert/internal/documents"
	"github.com/JaimeStill/doc-convert/internal/images"
	"github.com/JaimeStill/doc-convert/pkg/logging"
	"github.com/JaimeStill/doc-convert/pkg/storage"
)

func newSystem(t *testing.T) (conversions.System, storage.System) {
	t.Helper()

	storeCfg := &storage.Config{BasePath: t.TempDir()}
	if err := storeCfg.Finalize(nil); err != nil {
		t.Fatalf("storage Finalize() error = %v", err)
	}
	store, err := storage.New(storeCfg, logging.Discard())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	imgCfg := &images.Config{}
	if err := imgCfg.Finalize(nil); err != nil {
		t.Fatalf("images Finalize() error = %v", err)
	}

	logger := logging.Discard()
	return conversions.New(images.NewConverter(imgCfg, logger), documents.New(logger), logger), store
}

func TestSystem_ValidationCreatesNoFiles(t *testing.T) {
	sys, store := newSystem(t)
	ctx := context.Background()
	pdf := buildPDF(t, 100)

	tests := []struct {
		name string
		run  func(*storage.Scope) error
		want error
	}{
		{
			name: "convert unsupported",
			run: func(s *storage.Scope) error {
				_, err := sys.Convert(ctx, s, conversions.Upload{Filename: "doc.pdf", Reader: bytes.NewReader(pdf)})
				return err
			},
			want: images.ErrUnsupportedFormat,
		},
		{
			name: "split empty range",
			run: func(s *storage.Scope) error {
				_, err := sys.Split(ctx, s, conversions.Upload{Filename: "doc.pdf", Reader: bytes.NewReader(pdf)},
					documents.SplitOptions{Mode: documents.SplitRange})
				return err
			},
			want: documents.ErrEmptyPageRange,
		},
		{
			name: "split unknown mode",
			run: func(s *storage.Scope) error {
				_, err := sys.Split(ctx, s, conversions.Upload{Filename: "doc.pdf", Reader: bytes.NewReader(pdf)},
					documents.SplitOptions{Mode: "pages"})
				return err
			},
			want: documents.ErrInvalidSplitMode,
		},
		{
			name: "merge nothing",
			run: func(s *storage.Scope) error {
				_, err := sys.Merge(ctx, s, nil)
				return err
			},
			want: conversions.ErrNoFiles,
		},
		{
			name: "merge unnamed first",
			run: func(s *storage.Scope) error {
				_, err := sys.Merge(ctx, s, []conversions.Upload{{Reader: bytes.NewReader(pdf)}})
				return err
			},
			want: conversions.ErrNoFilesSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := store.Scope()
			defer scope.Release()

			if err := tt.run(scope); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if files := scope.Files(); len(files) != 0 {
				t.Errorf("scope holds %d files after validation failure", len(files))
			}
		})
	}
}

func TestSystem_Split_Result(t *testing.T) {
	sys, store := newSystem(t)

	scope := store.Scope()
	defer scope.Release()

	res, err := sys.Split(context.Background(), scope,
		conversions.Upload{Filename: "doc.pdf", Reader: bytes.NewReader(buildPDF(t, 100, 200, 300))},
		documents.SplitOptions{Mode: documents.SplitRange, Ranges: "1-1,x"},
	)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if res.Filename != conversions.SplitFilename {
		t.Errorf("Filename = %q, want %q", res.Filename, conversions.SplitFilename)
	}
	if res.ContentType != conversions.ContentTypeZip {
		t.Errorf("ContentType = %q, want %q", res.ContentType, conversions.ContentTypeZip)
	}
	if res.Size <= 0 {
		t.Errorf("Size = %d, want > 0", res.Size)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Token != "x" {
		t.Errorf("Skipped = %v, want [x]", res.Skipped)
	}

	// upload plus archive
	if files := scope.Files(); len(files) != 2 {
		t.Errorf("scope files = %d, want 2", len(files))
	}
}
