// internal/storage/store.go
package storage

import (
	"context"
	"fmt"

	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Specific errors for store operations. Each wraps one domain kind.
var (
	ErrUserNotFound       = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrCollectionNotFound = fmt.Errorf("collection %w", domain.ErrNotFound)
	ErrItemNotFound       = fmt.Errorf("item %w", domain.ErrNotFound)
	ErrEventNotFound      = fmt.Errorf("event %w", domain.ErrNotFound)
	ErrEmailExists        = fmt.Errorf("%w: email already exists", domain.ErrConflict)
	ErrUsernameExists     = fmt.Errorf("%w: username already exists", domain.ErrConflict)
)

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) (int64, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	// FindUserByLogin matches either the email or the username.
	FindUserByLogin(ctx context.Context, login string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
}

// CollectionStore persists collections.
type CollectionStore interface {
	CreateCollection(ctx context.Context, c *domain.Collection) (int64, error)
	FindCollection(ctx context.Context, id int64) (*domain.Collection, error)
	ListCollections(ctx context.Context, userID int64, opts domain.ListOptions) ([]domain.Collection, error)
	UpdateCollection(ctx context.Context, c *domain.Collection) error
	// DeleteCollection removes the collection together with its items and events.
	DeleteCollection(ctx context.Context, id int64) error
	CollectionOwner(ctx context.Context, id int64) (domain.Ownership, error)
}

// ItemStore persists items.
type ItemStore interface {
	CreateItem(ctx context.Context, it *domain.Item) (int64, error)
	FindItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context, collectionID int64, opts domain.ListOptions) ([]domain.Item, error)
	UpdateItem(ctx context.Context, it *domain.Item) error
	DeleteItem(ctx context.Context, id int64) error
	ItemOwner(ctx context.Context, id int64) (domain.Ownership, error)
}

// EventStore persists events.
type EventStore interface {
	CreateEvent(ctx context.Context, ev *domain.Event) (int64, error)
	FindEvent(ctx context.Context, id int64) (*domain.Event, error)
	ListEvents(ctx context.Context, collectionID int64, opts domain.ListOptions) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, ev *domain.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	EventOwner(ctx context.Context, id int64) (domain.Ownership, error)
}

// Store is the full persistence contract. SQLStore and MemoryStore both satisfy it.
type Store interface {
	UserStore
	CollectionStore
	ItemStore
	EventStore
	Ping(ctx context.Context) error
	Close() error
}

// storageErr wraps an unexpected backend error so it classifies as a storage failure
// without exposing the driver message.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStorage, err)
}
