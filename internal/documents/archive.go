package documents

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// Archive writes an ordered, Deflate-compressed zip in a single pass.
// Entry names are unique; a repeated name gets a numeric suffix.
type Archive struct {
	zw      *zip.Writer
	seen    map[string]int
	entries []string
}

// NewArchive creates an archive that writes to w.
func NewArchive(w io.Writer) *Archive {
	return &Archive{
		zw:   zip.NewWriter(w),
		seen: make(map[string]int),
	}
}

// Create starts a new entry and returns a writer for its content and the
// final entry name. The previous entry is finished implicitly.
func (a *Archive) Create(name string) (io.Writer, string, error) {
	name = a.unique(name)

	fw, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("create entry %s: %w", name, err)
	}

	a.entries = append(a.entries, name)
	return fw, name, nil
}

// Entries returns the entry names in write order.
func (a *Archive) Entries() []string {
	return slices.Clone(a.entries)
}

// Close writes the central directory. It does not close the underlying writer.
func (a *Archive) Close() error {
	return a.zw.Close()
}

func (a *Archive) unique(name string) string {
	n := a.seen[name]
	a.seen[name] = n + 1
	if n == 0 {
		return name
	}

	stem, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		stem, ext = name[:i], name[i:]
	}

	candidate := fmt.Sprintf("%s_%d%s", stem, n+1, ext)
	for a.seen[candidate] > 0 {
		n++
		candidate = fmt.Sprintf("%s_%d%s", stem, n+1, ext)
	}
	a.seen[candidate] = 1
	return candidate
}
