// internal/domain/models.go
package domain

import "time"

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// User defines the structure for user data in the DB
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	DateOfBirth    string    `json:"date_of_birth,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
}

// Collection is a named group of items and events owned by one user.
type Collection struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Image       string    `json:"image,omitempty"`
}

// Item belongs to exactly one collection.
type Item struct {
	ID              int64    `json:"id"`
	CollectionID    int64    `json:"collection_id"`
	Name            string   `json:"name"`
	Importance      int      `json:"importance"`
	Weight          *float64 `json:"weight"`
	Price           *float64 `json:"price"`
	AcquisitionDate string   `json:"acquisition_date,omitempty"`
	Rating          *int     `json:"rating"`
	Description     string   `json:"description,omitempty"`
	Image           string   `json:"image,omitempty"`
}

// Event belongs to exactly one collection.
type Event struct {
	ID           int64  `json:"id"`
	CollectionID int64  `json:"collection_id"`
	Name         string `json:"name"`
	Location     string `json:"location,omitempty"`
	Date         string `json:"date"`
	Description  string `json:"description,omitempty"`
	Rating       *int   `json:"rating"`
	Image        string `json:"image,omitempty"`
}

// Ownership is the resolved end of a row's ownership chain.
type Ownership struct {
	OwnerID      int64
	CollectionID int64
}

// ListOptions carries pagination and ordering for list queries.
// SortBy must already be checked against the resource's sortable columns.
type ListOptions struct {
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string // "asc" or "desc"
}
