package converter

import (
	"errors"
	"testing"
)

func TestResolvePageRange(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		pageCount int
		first     int
		last      int
	}{
		{"both bounds absent", 0, 0, 5, 0, 4},
		{"explicit start of 1 matches absent", 1, 0, 5, 0, 4},
		{"explicit end at page count matches absent", 0, 5, 5, 0, 4},
		{"subrange", 2, 4, 10, 1, 3},
		{"single page", 2, 2, 3, 1, 1},
		{"end clamped to page count", 3, 99, 5, 2, 4},
		{"negative start clamped to first page", -3, 2, 5, 0, 1},
		{"single page document", 0, 0, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePageRange(tt.start, tt.end, tt.pageCount)
			if err != nil {
				t.Fatalf("resolvePageRange(%d, %d, %d) returned error: %v", tt.start, tt.end, tt.pageCount, err)
			}
			if got.First != tt.first || got.Last != tt.last {
				t.Errorf("resolvePageRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.start, tt.end, tt.pageCount, got.First, got.Last, tt.first, tt.last)
			}
			if got.First < 0 || got.First > got.Last || got.Last > tt.pageCount-1 {
				t.Errorf("resolved range (%d, %d) violates 0 <= first <= last <= %d",
					got.First, got.Last, tt.pageCount-1)
			}
		})
	}
}

func TestResolvePageRangeEmpty(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		pageCount int
	}{
		{"start beyond page count", 7, 0, 5},
		{"inverted range", 4, 2, 10},
		{"negative end", 0, -2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolvePageRange(tt.start, tt.end, tt.pageCount)
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("resolvePageRange(%d, %d, %d) = %v, want ErrInvalidRange",
					tt.start, tt.end, tt.pageCount, err)
			}
		})
	}
}

func TestPageRangePages(t *testing.T) {
	r := PageRange{First: 1, Last: 3}
	if got := r.Pages(); got != 3 {
		t.Errorf("Pages() = %d, want 3", got)
	}
}
