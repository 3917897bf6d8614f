package documents_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/JaimeStill/doc-convert/internal/documents"
	"github.com/JaimeStill/doc-convert/pkg/logging"
	"github.com/klauspost/compress/zip"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const pageHeight = 100

// buildPDF creates a document with one page per width. Every page is
// pageHeight tall, so a page is identified by its width/height ratio.
func buildPDF(t *testing.T, widths ...int) []byte {
	t.Helper()

	imgs := make([]io.Reader, len(widths))
	for i, w := range widths {
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, pageHeight))); err != nil {
			t.Fatalf("encode page image: %v", err)
		}
		imgs[i] = &buf
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.Pos = types.Full

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, imgs, imp, model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("ImportImages() error = %v", err)
	}
	return out.Bytes()
}

// pageRatios returns the rounded width/height ratio of every page.
func pageRatios(t *testing.T, pdf []byte) []int {
	t.Helper()

	dims, err := api.PageDims(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("PageDims() error = %v", err)
	}

	ratios := make([]int, len(dims))
	for i, d := range dims {
		ratios[i] = int(math.Round(d.Width / d.Height))
	}
	return ratios
}

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}

	entries := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if f.Method != zip.Deflate {
			t.Errorf("entry %s method = %d, want Deflate", f.Name, f.Method)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		entries[f.Name] = b
	}
	return entries
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newSystem() documents.System {
	return documents.New(logging.Discard())
}

func TestPageCount(t *testing.T) {
	sys := newSystem()

	count, err := sys.PageCount(context.Background(), bytes.NewReader(buildPDF(t, 100, 200, 300)))
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("PageCount() = %d, want 3", count)
	}
}

func TestPageCount_Invalid(t *testing.T) {
	sys := newSystem()

	_, err := sys.PageCount(context.Background(), strings.NewReader("%PDF-1.7 garbage"))
	if !errors.Is(err, documents.ErrInvalidDocument) {
		t.Errorf("PageCount() error = %v, want %v", err, documents.ErrInvalidDocument)
	}
}

func TestSplit_All(t *testing.T) {
	sys := newSystem()
	src := bytes.NewReader(buildPDF(t, 100, 200, 300))

	var out bytes.Buffer
	res, err := sys.Split(context.Background(), src, documents.SplitOptions{Mode: documents.SplitAll}, &out)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	want := []string{"page_1.pdf", "page_2.pdf", "page_3.pdf"}
	if strings.Join(res.Entries, ",") != strings.Join(want, ",") {
		t.Errorf("Entries = %v, want %v", res.Entries, want)
	}
	if res.Pages != 3 {
		t.Errorf("Pages = %d, want 3", res.Pages)
	}

	entries := readArchive(t, out.Bytes())
	if len(entries) != 3 {
		t.Fatalf("archive entries = %d, want 3", len(entries))
	}

	for i, name := range want {
		got := pageRatios(t, entries[name])
		if !equalInts(got, []int{i + 1}) {
			t.Errorf("%s page ratios = %v, want [%d]", name, got, i+1)
		}
	}
}

func TestSplit_DefaultModeIsAll(t *testing.T) {
	sys := newSystem()

	var out bytes.Buffer
	res, err := sys.Split(context.Background(), bytes.NewReader(buildPDF(t, 100, 200)), documents.SplitOptions{}, &out)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(res.Entries) != 2 {
		t.Errorf("Entries = %v, want 2 entries", res.Entries)
	}
}

func TestSplit_Range(t *testing.T) {
	tests := []struct {
		name        string
		ranges      string
		wantEntries map[string][]int
		wantSkipped []string
	}{
		{
			name:   "overlapping",
			ranges: "1-2,2-3",
			wantEntries: map[string][]int{
				"pages_1_to_2.pdf": {1, 2},
				"pages_2_to_3.pdf": {2, 3},
			},
		},
		{
			name:   "whitespace and single page",
			ranges: " 3 - 3 , 1-1 ,",
			wantEntries: map[string][]int{
				"pages_3_to_3.pdf": {3},
				"pages_1_to_1.pdf": {1},
			},
		},
		{
			name:   "invalid tokens skipped",
			ranges: "abc,1-3,2-9",
			wantEntries: map[string][]int{
				"pages_1_to_3.pdf": {1, 2, 3},
			},
			wantSkipped: []string{"abc", "2-9"},
		},
		{
			name:   "duplicates kept",
			ranges: "2-2,2-2",
			wantEntries: map[string][]int{
				"pages_2_to_2.pdf":   {2},
				"pages_2_to_2_2.pdf": {2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem()
			src := bytes.NewReader(buildPDF(t, 100, 200, 300))

			var out bytes.Buffer
			res, err := sys.Split(
				context.Background(),
				src,
				documents.SplitOptions{Mode: documents.SplitRange, Ranges: tt.ranges},
				&out,
			)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}

			entries := readArchive(t, out.Bytes())
			if len(entries) != len(tt.wantEntries) {
				t.Fatalf("archive entries = %d, want %d", len(entries), len(tt.wantEntries))
			}

			for name, wantRatios := range tt.wantEntries {
				data, ok := entries[name]
				if !ok {
					t.Errorf("missing entry %s", name)
					continue
				}
				if got := pageRatios(t, data); !equalInts(got, wantRatios) {
					t.Errorf("%s page ratios = %v, want %v", name, got, wantRatios)
				}
			}

			if len(res.Skipped) != len(tt.wantSkipped) {
				t.Fatalf("Skipped = %v, want %v", res.Skipped, tt.wantSkipped)
			}
			for i, tok := range tt.wantSkipped {
				if res.Skipped[i].Token != tok {
					t.Errorf("Skipped[%d].Token = %q, want %q", i, res.Skipped[i].Token, tok)
				}
			}
		})
	}
}

func TestSplit_LogsSelection(t *testing.T) {
	var buf bytes.Buffer
	sys := documents.New(slog.New(slog.NewTextHandler(&buf, nil)))

	var out bytes.Buffer
	_, err := sys.Split(
		context.Background(),
		bytes.NewReader(buildPDF(t, 100, 200, 300)),
		documents.SplitOptions{Mode: documents.SplitRange, Ranges: "1-2,2-3,x"},
		&out,
	)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	log := buf.String()
	for _, want := range []string{"msg=\"page range skipped\"", "extracted=4", "entries=2", "skipped=1"} {
		if !strings.Contains(log, want) {
			t.Errorf("log output missing %s: %s", want, log)
		}
	}
}

func TestSplit_Errors(t *testing.T) {
	valid := buildPDF(t, 100, 200, 300)

	tests := []struct {
		name    string
		src     []byte
		opts    documents.SplitOptions
		wantErr error
	}{
		{"out of bounds only", valid, documents.SplitOptions{Mode: documents.SplitRange, Ranges: "1-5"}, documents.ErrNoValidRanges},
		{"empty ranges", valid, documents.SplitOptions{Mode: documents.SplitRange, Ranges: "   "}, documents.ErrEmptyPageRange},
		{"unknown mode", valid, documents.SplitOptions{Mode: "odd"}, documents.ErrInvalidSplitMode},
		{"corrupt source", []byte("not a pdf"), documents.SplitOptions{Mode: documents.SplitAll}, documents.ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem()

			var out bytes.Buffer
			_, err := sys.Split(context.Background(), bytes.NewReader(tt.src), tt.opts, &out)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Split() error = %v, want %v", err, tt.wantErr)
			}
			if out.Len() != 0 {
				t.Errorf("output length = %d, want 0", out.Len())
			}
		})
	}
}

func TestSplit_Cancelled(t *testing.T) {
	sys := newSystem()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := sys.Split(ctx, bytes.NewReader(buildPDF(t, 100)), documents.SplitOptions{}, &out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Split() error = %v, want %v", err, context.Canceled)
	}
}

func TestMerge(t *testing.T) {
	sys := newSystem()

	srcs := []io.ReadSeeker{
		bytes.NewReader(buildPDF(t, 100)),
		bytes.NewReader(buildPDF(t, 200, 300)),
		bytes.NewReader(buildPDF(t, 400)),
	}

	var out bytes.Buffer
	res, err := sys.Merge(context.Background(), srcs, &out)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if res.Pages != 4 {
		t.Errorf("Pages = %d, want 4", res.Pages)
	}
	if res.Inputs != 3 {
		t.Errorf("Inputs = %d, want 3", res.Inputs)
	}

	if got := pageRatios(t, out.Bytes()); !equalInts(got, []int{1, 2, 3, 4}) {
		t.Errorf("page ratios = %v, want [1 2 3 4]", got)
	}
}

func TestMerge_SingleInput(t *testing.T) {
	sys := newSystem()
	src := buildPDF(t, 100, 200)

	var out bytes.Buffer
	res, err := sys.Merge(context.Background(), []io.ReadSeeker{bytes.NewReader(src)}, &out)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2", res.Pages)
	}
	if !bytes.Equal(out.Bytes(), src) {
		t.Error("single input was not copied unchanged")
	}
}

func TestMerge_Errors(t *testing.T) {
	valid := buildPDF(t, 100)

	tests := []struct {
		name    string
		srcs    [][]byte
		wantErr error
		wantMsg string
	}{
		{"no inputs", nil, documents.ErrNoDocuments, ""},
		{"corrupt second", [][]byte{valid, []byte("junk"), valid}, documents.ErrInvalidDocument, "file 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem()

			srcs := make([]io.ReadSeeker, len(tt.srcs))
			for i, b := range tt.srcs {
				srcs[i] = bytes.NewReader(b)
			}

			var out bytes.Buffer
			_, err := sys.Merge(context.Background(), srcs, &out)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Merge() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Merge() error = %q, want mention of %q", err, tt.wantMsg)
			}
			if out.Len() != 0 {
				t.Errorf("output length = %d, want 0", out.Len())
			}
		})
	}
}

func TestParseSplitMode(t *testing.T) {
	tests := []struct {
		input   string
		want    documents.SplitMode
		wantErr bool
	}{
		{"", documents.SplitAll, false},
		{"all", documents.SplitAll, false},
		{"range", documents.SplitRange, false},
		{" range ", documents.SplitRange, false},
		{"ALL", "", true},
		{"pages", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := documents.ParseSplitMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSplitMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSplitMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
