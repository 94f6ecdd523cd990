package converter

import "fmt"

// PageRange is a resolved, 0-based inclusive page interval.
type PageRange struct {
	First int
	Last  int
}

// Pages returns the number of pages in the range.
func (r PageRange) Pages() int { return r.Last - r.First + 1 }

// resolvePageRange converts the request's 1-based, possibly open-ended bounds
// into a 0-based inclusive interval within the document. A zero bound means
// "from the first page" or "to the last page". Bounds outside the document
// are clamped silently; only an interval that ends up empty is an error.
func resolvePageRange(start, end, pageCount int) (PageRange, error) {
	first := 0
	if start != 0 {
		first = max(0, start-1)
	}
	last := pageCount - 1
	if end != 0 {
		last = min(pageCount-1, end-1)
	}
	if first > last {
		return PageRange{}, fmt.Errorf("%w: start=%d, end=%d for %d pages", ErrInvalidRange, start, end, pageCount)
	}
	return PageRange{First: first, Last: last}, nil
}
