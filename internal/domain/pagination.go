package domain

import "fmt"

// PageRequest is a validated page window derived from the from/size query
// pair of the public API. The page index is from/size using integer
// division, so a from value that is not an exact multiple of size snaps to
// the start of the containing page. Historical API behavior, kept for
// compatibility.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest validates from and size and derives the page index.
func NewPageRequest(from, size int) (PageRequest, error) {
	if from < 0 {
		return PageRequest{}, NewValidationError(fmt.Sprintf("from must not be negative, got %d", from))
	}
	if size < 1 {
		return PageRequest{}, NewValidationError(fmt.Sprintf("size must be positive, got %d", size))
	}
	return PageRequest{Page: from / size, Size: size}, nil
}

// Offset returns the row offset of the page window.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PaginatedResult wraps one page of items with the total row count.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// NewPaginatedResult assembles a PaginatedResult.
func NewPaginatedResult[T any](items []T, total int64, page PageRequest) PaginatedResult[T] {
	return PaginatedResult[T]{Items: items, Total: total, Page: page.Page, Size: page.Size}
}
