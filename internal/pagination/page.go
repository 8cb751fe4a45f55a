// Package pagination windows an already-fetched snapshot into fixed-size pages.
package pagination

import (
	"fmt"
	"slices"
	"strings"

	"github.com/honeynil/BlackMarketService/internal/models"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
)

type Page[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate returns the 1-based page of items. The input slice is neither
// reordered nor aliased by the result.
func Paginate[T any](items []T, pageSize, page int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, fmt.Errorf("%w: page size %d", pkgerrors.ErrInvalidPage, pageSize)
	}
	if page < 1 {
		return Page[T]{}, fmt.Errorf("%w: page %d", pkgerrors.ErrInvalidPage, page)
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	// page and pageSize come from callers unchecked; multiply only once
	// the page is known to be in range.
	start := total
	if page <= totalPages {
		start = (page - 1) * pageSize
	}
	end := start + min(pageSize, total-start)

	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:       window,
		Page:        page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     end < total,
		HasPrevious: page > 1,
	}, nil
}

// SortListings returns a copy of listings ordered by creation time, oldest
// first, with the id as a tie-break.
func SortListings(listings []models.Listing) []models.Listing {
	sorted := slices.Clone(listings)
	slices.SortStableFunc(sorted, func(a, b models.Listing) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return sorted
}
