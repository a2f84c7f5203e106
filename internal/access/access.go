// internal/access/access.go

// Package access holds the ownership checks every resource operation goes through.
package access

import (
	"context"
	"fmt"

	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// OwnerResolver resolves a row's ownership chain. storage.Store satisfies it.
type OwnerResolver interface {
	CollectionOwner(ctx context.Context, id int64) (domain.Ownership, error)
	ItemOwner(ctx context.Context, id int64) (domain.Ownership, error)
	EventOwner(ctx context.Context, id int64) (domain.Ownership, error)
}

// Authorizer answers "may this caller touch this row".
type Authorizer struct {
	owners OwnerResolver
}

// NewAuthorizer returns an Authorizer backed by owners.
func NewAuthorizer(owners OwnerResolver) *Authorizer {
	return &Authorizer{owners: owners}
}

// Collection checks that caller owns collection id.
func (a *Authorizer) Collection(ctx context.Context, caller *domain.Caller, id int64) (domain.Ownership, error) {
	return a.check(ctx, caller, "collection", id, a.owners.CollectionOwner)
}

// Item checks that caller owns the collection item id belongs to.
func (a *Authorizer) Item(ctx context.Context, caller *domain.Caller, id int64) (domain.Ownership, error) {
	return a.check(ctx, caller, "item", id, a.owners.ItemOwner)
}

// Event checks that caller owns the collection event id belongs to.
func (a *Authorizer) Event(ctx context.Context, caller *domain.Caller, id int64) (domain.Ownership, error) {
	return a.check(ctx, caller, "event", id, a.owners.EventOwner)
}

func (a *Authorizer) check(ctx context.Context, caller *domain.Caller, resource string, id int64,
	resolve func(context.Context, int64) (domain.Ownership, error)) (domain.Ownership, error) {
	if err := caller.Require(); err != nil {
		return domain.Ownership{}, err
	}
	if id <= 0 {
		return domain.Ownership{}, fmt.Errorf("%s %w", resource, domain.ErrNotFound)
	}

	o, err := resolve(ctx, id)
	if err != nil {
		return domain.Ownership{}, err
	}
	if !caller.Owns(o.OwnerID) {
		customLog.Warnf("Access: UserID %d denied on %s %d owned by %d", caller.UserID, resource, id, o.OwnerID)
		return domain.Ownership{}, fmt.Errorf("%s %d: %w", resource, id, domain.ErrForbidden)
	}
	return o, nil
}
