// client/filter.go
package client

import (
	"strings"
	"time"

	"github.com/Annany2002/collecta-backend/internal/domain"
)

// HighImportance is the importance threshold of the "high importance" view.
const HighImportance = 8

// Filter narrows an already fetched page for display. Zero fields match everything.
// Results keep page order and never contain rows outside the page.
type Filter struct {
	// Search matches name or description, and an event's location, case-insensitively.
	Search string
	// Type matches the collection type exactly, ignoring case. Collections only.
	Type string
	// MinImportance keeps items with at least this importance. Items only.
	MinImportance int
	// Since keeps rows dated on or after this day: collection creation, item
	// acquisition and event dates. Undated items are dropped.
	Since time.Time
}

func (f Filter) matchesText(fields ...string) bool {
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// onOrAfter compares calendar days; dates use domain.DateLayout.
func (f Filter) onOrAfter(date string) bool {
	if f.Since.IsZero() {
		return true
	}
	return date != "" && date >= f.Since.Format(domain.DateLayout)
}

// Collections applies the filter to a page of collections.
func (f Filter) Collections(page []Collection) []Collection {
	out := make([]Collection, 0, len(page))
	for _, col := range page {
		if !f.matchesText(col.Name, col.Description) {
			continue
		}
		if f.Type != "" && !strings.EqualFold(col.Type, f.Type) {
			continue
		}
		if !f.onOrAfter(col.CreatedAt.UTC().Format(domain.DateLayout)) {
			continue
		}
		out = append(out, col)
	}
	return out
}

// Items applies the filter to a page of items.
func (f Filter) Items(page []Item) []Item {
	out := make([]Item, 0, len(page))
	for _, it := range page {
		if !f.matchesText(it.Name, it.Description) || it.Importance < f.MinImportance {
			continue
		}
		if !f.onOrAfter(it.AcquisitionDate) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Events applies the filter to a page of events.
func (f Filter) Events(page []Event) []Event {
	out := make([]Event, 0, len(page))
	for _, ev := range page {
		if f.matchesText(ev.Name, ev.Description, ev.Location) && f.onOrAfter(ev.Date) {
			out = append(out, ev)
		}
	}
	return out
}
