// internal/core/query_params_test.go
package core

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annany2002/collecta-backend/internal/domain"
)

func TestParseListQueryOptions(t *testing.T) {
	t.Run("defaults per resource", func(t *testing.T) {
		opts, err := ParseListQueryOptions(url.Values{}, EventSort)
		require.NoError(t, err)
		assert.Equal(t, domain.ListOptions{Limit: DefaultLimit, SortBy: "date", SortOrder: "asc"}, opts)

		opts, err = ParseListQueryOptions(url.Values{}, CollectionSort)
		require.NoError(t, err)
		assert.Equal(t, "created_at", opts.SortBy)
		assert.Equal(t, "desc", opts.SortOrder)
	})

	t.Run("explicit values", func(t *testing.T) {
		q := url.Values{"limit": {"20"}, "offset": {"40"}, "sort": {"Importance"}, "order": {"DESC"}}
		opts, err := ParseListQueryOptions(q, ItemSort)
		require.NoError(t, err)
		assert.Equal(t, domain.ListOptions{Limit: 20, Offset: 40, SortBy: "importance", SortOrder: "desc"}, opts)
	})

	invalid := []struct {
		name  string
		query url.Values
	}{
		{"limit not int", url.Values{"limit": {"ten"}}},
		{"limit zero", url.Values{"limit": {"0"}}},
		{"limit too large", url.Values{"limit": {"1001"}}},
		{"negative offset", url.Values{"offset": {"-1"}}},
		{"unknown sort", url.Values{"sort": {"collection_id"}}},
		{"injected sort", url.Values{"sort": {"id;--"}}},
		{"bad order", url.Values{"order": {"sideways"}}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseListQueryOptions(tc.query, ItemSort)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSortableNormalize(t *testing.T) {
	opts := EventSort.Normalize(domain.ListOptions{Limit: 5000, Offset: -3, SortBy: "password_hash", SortOrder: "up"})
	assert.Equal(t, domain.ListOptions{Limit: MaxLimit, Offset: 0, SortBy: "date", SortOrder: "asc"}, opts)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "date ASC, id ASC", OrderClause(domain.ListOptions{SortBy: "date", SortOrder: "asc"}))
	assert.Equal(t, "id DESC", OrderClause(domain.ListOptions{SortBy: "id", SortOrder: "desc"}))
}
