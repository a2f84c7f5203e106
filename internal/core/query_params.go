// internal/core/query_params.go
package core

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Annany2002/collecta-backend/internal/domain"
)

// Default and limit constants for pagination
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Sortable maps a public sort key to its column and default order for one resource.
type Sortable struct {
	Columns      map[string]string
	DefaultSort  string
	DefaultOrder string
}

// Sortable columns per resource.
var (
	CollectionSort = Sortable{
		Columns:      map[string]string{"created_at": "created_at", "name": "name", "type": "type", "id": "id"},
		DefaultSort:  "created_at",
		DefaultOrder: "desc",
	}
	ItemSort = Sortable{
		Columns: map[string]string{
			"id": "id", "name": "name", "importance": "importance", "price": "price",
			"weight": "weight", "acquisition_date": "acquisition_date", "rating": "rating",
		},
		DefaultSort:  "id",
		DefaultOrder: "asc",
	}
	EventSort = Sortable{
		Columns:      map[string]string{"date": "date", "name": "name", "rating": "rating", "id": "id"},
		DefaultSort:  "date",
		DefaultOrder: "asc",
	}
)

// ParseListQueryOptions extracts pagination and sorting options from query parameters.
// Sort keys outside the resource's Sortable columns are rejected.
func ParseListQueryOptions(queryParams url.Values, sortable Sortable) (domain.ListOptions, error) {
	opts := domain.ListOptions{
		Limit:     DefaultLimit,
		Offset:    0,
		SortBy:    sortable.Columns[sortable.DefaultSort],
		SortOrder: sortable.DefaultOrder,
	}

	if limitStr := queryParams.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return opts, domain.Invalid("limit", "must be an integer")
		}
		if limit < 1 {
			return opts, domain.Invalid("limit", "must be at least 1")
		}
		if limit > MaxLimit {
			return opts, domain.Invalid("limit", "maximum is %d", MaxLimit)
		}
		opts.Limit = limit
	}

	if offsetStr := queryParams.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return opts, domain.Invalid("offset", "must be an integer")
		}
		if offset < 0 {
			return opts, domain.Invalid("offset", "must be non-negative")
		}
		opts.Offset = offset
	}

	if sortBy := queryParams.Get("sort"); sortBy != "" {
		column, ok := sortable.Columns[strings.ToLower(sortBy)]
		if !IsValidIdentifier(sortBy) || !ok {
			return opts, domain.Invalid("sort", "'%s' is not a sortable column", sortBy)
		}
		opts.SortBy = column
	}

	if order := queryParams.Get("order"); order != "" {
		lowerOrder := strings.ToLower(order)
		if lowerOrder != "asc" && lowerOrder != "desc" {
			return opts, domain.Invalid("order", "must be 'asc' or 'desc'")
		}
		opts.SortOrder = lowerOrder
	}

	return opts, nil
}

// Normalize fills unset fields of opts from sortable and clamps the page size. It is
// used by callers that build ListOptions in code rather than from a query string.
func (s Sortable) Normalize(opts domain.ListOptions) domain.ListOptions {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if column, ok := s.Columns[opts.SortBy]; ok {
		opts.SortBy = column
	} else {
		opts.SortBy = s.Columns[s.DefaultSort]
	}
	if opts.SortOrder != "asc" && opts.SortOrder != "desc" {
		opts.SortOrder = s.DefaultOrder
	}
	return opts
}

// OrderClause renders the ORDER BY clause for opts. The id column is appended as a
// tie-breaker so pages are stable.
func OrderClause(opts domain.ListOptions) string {
	clause := fmt.Sprintf("%s %s", opts.SortBy, strings.ToUpper(opts.SortOrder))
	if opts.SortBy != "id" {
		clause += fmt.Sprintf(", id %s", strings.ToUpper(opts.SortOrder))
	}
	return clause
}
