package search

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Page struct {
	Index int
	Size  int
}

// NewPage clamps a requested page: negative index becomes 0, a non-positive
// size becomes defaultSize, size is capped at maxSize, and index is capped so
// the offset fits in an int.
func NewPage(index, size, defaultSize, maxSize int) Page {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if index < 0 {
		index = 0
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	if index > math.MaxInt/size {
		index = math.MaxInt / size
	}
	return Page{Index: index, Size: size}
}

// Offset saturates at math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	if p.Index <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Index > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Index * p.Size
}

type Result[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Index int   `json:"page"`
	Size  int   `json:"size"`
}

func NewResult[T any](items []T, total int64, page Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Total: total, Index: page.Index, Size: page.Size}
}

func (r Result[T]) TotalPages() int {
	if r.Size <= 0 {
		return 0
	}
	return int((r.Total + int64(r.Size) - 1) / int64(r.Size))
}

// Correct re-issues an out-of-range query once against the last valid page.
// An empty result is returned as is, whatever page was asked for.
func Correct[T any](req Page, first Result[T], fetch func(Page) (Result[T], error)) (Result[T], error) {
	pages := first.TotalPages()
	if first.Total == 0 || req.Index < pages {
		return first, nil
	}
	last := pages - 1
	if last < 0 {
		last = 0
	}
	return fetch(Page{Index: last, Size: req.Size})
}
