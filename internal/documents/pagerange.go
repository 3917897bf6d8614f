package documents

import (
	"fmt"
	"strconv"
	"strings"
)

// PageRange is an inclusive, 1-based span of pages.
type PageRange struct {
	Start int
	End   int
}

// String renders the range in the "start-end" selection syntax.
func (r PageRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Len returns the number of pages in the range.
func (r PageRange) Len() int {
	return r.End - r.Start + 1
}

// EntryName returns the archive entry name for the range.
func (r PageRange) EntryName() string {
	return fmt.Sprintf("pages_%d_to_%d.pdf", r.Start, r.End)
}

// Rejection records a range token that was skipped and why.
type Rejection struct {
	Token string
	Err   error
}

func (r Rejection) String() string {
	return fmt.Sprintf("%q: %v", r.Token, r.Err)
}

// ParseResult holds the accepted ranges in input order and the skipped tokens.
type ParseResult struct {
	Ranges   []PageRange
	Rejected []Rejection
}

// ParsePageRanges parses a comma-separated list of "start-end" tokens against
// a document of totalPages pages. Whitespace around tokens and numbers is
// ignored and empty tokens are dropped. Malformed or out-of-bounds tokens are
// skipped and reported in Rejected; duplicates and overlaps are kept.
//
// ErrEmptyPageRange is returned when the expression holds no tokens, and
// ErrNoValidRanges when every token was rejected.
func ParsePageRanges(expr string, totalPages int) (ParseResult, error) {
	var result ParseResult
	tokens := 0

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens++

		r, err := parseRange(part, totalPages)
		if err != nil {
			result.Rejected = append(result.Rejected, Rejection{Token: part, Err: err})
			continue
		}
		result.Ranges = append(result.Ranges, r)
	}

	if tokens == 0 {
		return result, ErrEmptyPageRange
	}

	if len(result.Ranges) == 0 {
		return result, fmt.Errorf("%w: %d token(s) rejected", ErrNoValidRanges, len(result.Rejected))
	}

	return result, nil
}

func parseRange(part string, totalPages int) (PageRange, error) {
	startStr, endStr, ok := strings.Cut(part, "-")
	if !ok {
		return PageRange{}, fmt.Errorf("%w: expected start-end", ErrMalformedRange)
	}

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return PageRange{}, fmt.Errorf("%w: invalid start %q", ErrMalformedRange, startStr)
	}

	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return PageRange{}, fmt.Errorf("%w: invalid end %q", ErrMalformedRange, endStr)
	}

	if start < 1 {
		return PageRange{}, fmt.Errorf("%w: start page must be >= 1", ErrRangeOutOfBounds)
	}
	if start > end {
		return PageRange{}, fmt.Errorf("%w: start > end", ErrRangeOutOfBounds)
	}
	if end > totalPages {
		return PageRange{}, fmt.Errorf("%w: end page %d exceeds document pages (%d)", ErrRangeOutOfBounds, end, totalPages)
	}

	return PageRange{Start: start, End: end}, nil
}
