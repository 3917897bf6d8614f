package storage

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	fallbackFilename = "upload"
	maxFilenameLen   = 128
)

// SanitizeFilename reduces an untrusted client filename to a safe
// single path component. Unicode is folded to ASCII, path separators
// become word breaks, runs of whitespace collapse to "_", and anything
// outside [A-Za-z0-9._-] is dropped. Leading and trailing dots and
// underscores are trimmed so the result is never hidden or a traversal.
// An empty result becomes "upload".
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			b.WriteByte(' ')
		case r > unicode.MaxASCII:
		default:
			b.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(b.String()), "_")

	b.Reset()
	for _, r := range joined {
		if isSafeRune(r) {
			b.WriteRune(r)
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return fallbackFilename
	}

	if len(cleaned) > maxFilenameLen {
		ext := filepath.Ext(cleaned)
		if len(ext) >= maxFilenameLen {
			ext = ""
		}
		cleaned = cleaned[:maxFilenameLen-len(ext)] + ext
	}

	return cleaned
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '-':
		return true
	default:
		return false
	}
}
