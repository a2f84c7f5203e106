// client/filter_test.go
package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func names[T any](rows []T, name func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, name(r))
	}
	return out
}

func TestFilterItems(t *testing.T) {
	page := []Item{
		{ID: 1, Name: "Rare Dragon", Importance: 9, AcquisitionDate: "2025-03-01"},
		{ID: 2, Name: "Goblin", Importance: 2, Description: "a RARE variant", AcquisitionDate: "2024-12-31"},
		{ID: 3, Name: "Knight", Importance: 8},
		{ID: 4, Name: "Rare Wizard", Importance: 10, AcquisitionDate: "2025-01-01"},
	}
	itemName := func(it Item) string { return it.Name }

	testCases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero filter keeps the page", Filter{}, []string{"Rare Dragon", "Goblin", "Knight", "Rare Wizard"}},
		{"search name and description", Filter{Search: "rare"}, []string{"Rare Dragon", "Goblin", "Rare Wizard"}},
		{"high importance", Filter{MinImportance: HighImportance}, []string{"Rare Dragon", "Knight", "Rare Wizard"}},
		{"since drops undated", Filter{Since: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, []string{"Rare Dragon", "Rare Wizard"}},
		{"combined", Filter{Search: "rare", MinImportance: HighImportance, Since: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}, []string{"Rare Dragon"}},
		{"no match", Filter{Search: "unicorn"}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(tc.filter.Items(page), itemName))
		})
	}
}

func TestFilterCollectionsAndEvents(t *testing.T) {
	cols := []Collection{
		{ID: 1, Name: "Minis", Type: "Figures", CreatedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Coins", Type: "currency", CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "Old figures", Type: "figures", CreatedAt: time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	colName := func(c Collection) string { return c.Name }
	assert.Equal(t, []string{"Minis", "Old figures"}, names(Filter{Type: "FIGURES"}.Collections(cols), colName))
	assert.Equal(t, []string{"Minis", "Coins"}, names(Filter{Since: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}.Collections(cols), colName))

	events := []Event{
		{ID: 1, Name: "Expo", Location: "Berlin", Date: "2025-06-01"},
		{ID: 2, Name: "Swap meet", Location: "Lyon", Date: "2025-07-01"},
	}
	evName := func(e Event) string { return e.Name }
	assert.Equal(t, []string{"Swap meet"}, names(Filter{Search: "lyon"}.Events(events), evName))
	assert.Equal(t, []string{"Swap meet"}, names(Filter{Since: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)}.Events(events), evName))
}
