// internal/service/collections.go
package service

import (
	"context"

	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/media"
)

// CollectionInput is the whitelist of caller-settable collection fields.
// Nil fields are left unchanged on update.
type CollectionInput struct {
	Name        *string `json:"name" form:"name" validate:"omitnil,max=200"`
	Type        *string `json:"type" form:"type" validate:"omitnil,max=100"`
	Description *string `json:"description" form:"description" validate:"omitnil,max=2000"`
}

// ListCollections returns one page of the caller's collections.
func (s *Service) ListCollections(ctx context.Context, caller *domain.Caller, opts domain.ListOptions) ([]domain.Collection, error) {
	if err := caller.Require(); err != nil {
		return nil, err
	}
	return s.store.ListCollections(ctx, caller.UserID, opts)
}

// GetCollection returns a collection the caller owns.
func (s *Service) GetCollection(ctx context.Context, caller *domain.Caller, id int64) (*domain.Collection, error) {
	if _, err := s.authz.Collection(ctx, caller, id); err != nil {
		return nil, err
	}
	return s.store.FindCollection(ctx, id)
}

// CreateCollection creates a collection owned by the caller.
func (s *Service) CreateCollection(ctx context.Context, caller *domain.Caller, in CollectionInput, img *media.Image) (*domain.Collection, error) {
	if err := caller.Require(); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}

	c := &domain.Collection{UserID: caller.UserID, Name: name, CreatedAt: s.now().UTC()}
	patchText(&c.Type, in.Type)
	patchText(&c.Description, in.Description)

	if c.Image, err = s.saveImage(ctx, img); err != nil {
		return nil, err
	}
	if _, err := s.store.CreateCollection(ctx, c); err != nil {
		s.discard(ctx, c.Image)
		return nil, err
	}
	customLog.Printf("Service: UserID %d created collection %d", caller.UserID, c.ID)
	return c, nil
}

// UpdateCollection applies in and, when img is set, replaces the collection image.
func (s *Service) UpdateCollection(ctx context.Context, caller *domain.Caller, id int64, in CollectionInput, img *media.Image) (*domain.Collection, error) {
	if _, err := s.authz.Collection(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.store.FindCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := patchRequiredText("name", &c.Name, in.Name); err != nil {
		return nil, err
	}
	patchText(&c.Type, in.Type)
	patchText(&c.Description, in.Description)

	old := c.Image
	if img != nil {
		if c.Image, err = s.saveImage(ctx, img); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateCollection(ctx, c); err != nil {
		s.discard(ctx, replaced(c.Image, old))
		return nil, err
	}
	s.discard(ctx, replaced(old, c.Image))
	return c, nil
}

// SetCollectionImage replaces the collection image.
func (s *Service) SetCollectionImage(ctx context.Context, caller *domain.Caller, id int64, img *media.Image) (*domain.Collection, error) {
	if img == nil {
		if _, err := s.authz.Collection(ctx, caller, id); err != nil {
			return nil, err
		}
		return nil, domain.Invalid("image", "is required")
	}
	return s.UpdateCollection(ctx, caller, id, CollectionInput{}, img)
}

// DeleteCollection removes a collection with its items and events, then their images.
func (s *Service) DeleteCollection(ctx context.Context, caller *domain.Caller, id int64) error {
	if _, err := s.authz.Collection(ctx, caller, id); err != nil {
		return err
	}
	c, err := s.store.FindCollection(ctx, id)
	if err != nil {
		return err
	}

	images := []string{c.Image}
	err = forEachPage(ctx, func(ctx context.Context, opts domain.ListOptions) ([]domain.Item, error) {
		return s.store.ListItems(ctx, id, opts)
	}, func(it domain.Item) { images = append(images, it.Image) })
	if err != nil {
		return err
	}
	err = forEachPage(ctx, func(ctx context.Context, opts domain.ListOptions) ([]domain.Event, error) {
		return s.store.ListEvents(ctx, id, opts)
	}, func(ev domain.Event) { images = append(images, ev.Image) })
	if err != nil {
		return err
	}

	if err := s.store.DeleteCollection(ctx, id); err != nil {
		return err
	}
	for _, path := range images {
		s.discard(ctx, path)
	}
	customLog.Printf("Service: UserID %d deleted collection %d", caller.UserID, id)
	return nil
}
