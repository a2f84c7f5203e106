// api/models/resource_models.go
package models

// RatingRequest sets the rating of an item or event. The rating key is required; an
// explicit null clears the rating.
type RatingRequest struct {
	Rating *int `json:"rating"`
}

// Envelope keys for single rows and pages.
const (
	KeyUser        = "user"
	KeyCollection  = "collection"
	KeyCollections = "collections"
	KeyItem        = "item"
	KeyItems       = "items"
	KeyEvent       = "event"
	KeyEvents      = "events"
)
