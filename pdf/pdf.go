// Package pdf extracts plain text from a range of document pages.
package pdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidRange is returned for negative page numbers.
var ErrInvalidRange = errors.New("invalid page range")

// PageRange resolves a 1-based inclusive range against total pages.
// Zero means "not set": start defaults to the first page and end to the
// last. Out-of-bounds values are clamped. When the result is empty, end is
// less than start.
func PageRange(start, end, total int) (int, int, error) {
	if start < 0 || end < 0 {
		return 0, 0, fmt.Errorf("%w: start=%d end=%d", ErrInvalidRange, start, end)
	}
	if start == 0 {
		start = 1
	}
	if end == 0 {
		end = total
	}
	start = max(1, min(start, total))
	end = min(end, total)
	return start, end, nil
}

// Extract returns the text of pages start..end of the document at path,
// NFC-normalized. See PageRange for how the range is resolved.
func Extract(path string, start, end int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	first, last, err := PageRange(start, end, r.NumPage())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := first; i <= last; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		txt, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		b.WriteString(txt)
	}
	return norm.NFC.String(b.String()), nil
}
