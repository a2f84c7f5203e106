// internal/service/items.go
package service

import (
	"context"

	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/media"
)

// ItemInput is the whitelist of caller-settable item fields. Nil fields are left
// unchanged on update; CollectionID moves the item.
type ItemInput struct {
	Name            *string  `json:"name" form:"name" validate:"omitnil,max=200"`
	Importance      *int     `json:"importance" form:"importance" validate:"omitnil,min=0,max=10"`
	Weight          *float64 `json:"weight" form:"weight" validate:"omitnil,gte=0"`
	Price           *float64 `json:"price" form:"price" validate:"omitnil,gte=0"`
	AcquisitionDate *string  `json:"acquisition_date" form:"acquisition_date" validate:"omitempty,datetime=2006-01-02"`
	Rating          *int     `json:"rating" form:"rating" validate:"omitnil,min=0,max=5"`
	Description     *string  `json:"description" form:"description" validate:"omitnil,max=2000"`
	CollectionID    *int64   `json:"collection_id" form:"collection_id" validate:"omitnil,gt=0"`
}

// ListItems returns one page of a collection's items.
func (s *Service) ListItems(ctx context.Context, caller *domain.Caller, collectionID int64, opts domain.ListOptions) ([]domain.Item, error) {
	if _, err := s.authz.Collection(ctx, caller, collectionID); err != nil {
		return nil, err
	}
	return s.store.ListItems(ctx, collectionID, opts)
}

// GetItem returns an item in a collection the caller owns.
func (s *Service) GetItem(ctx context.Context, caller *domain.Caller, id int64) (*domain.Item, error) {
	if _, err := s.authz.Item(ctx, caller, id); err != nil {
		return nil, err
	}
	return s.store.FindItem(ctx, id)
}

// CreateItem adds an item to collectionID. Importance is required.
func (s *Service) CreateItem(ctx context.Context, caller *domain.Caller, collectionID int64, in ItemInput, img *media.Image) (*domain.Item, error) {
	if _, err := s.authz.Collection(ctx, caller, collectionID); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	if in.Importance == nil {
		return nil, domain.Invalid("importance", "is required")
	}
	if in.CollectionID != nil && *in.CollectionID != collectionID {
		return nil, domain.Invalid("collection_id", "does not match the collection in the path")
	}

	it := &domain.Item{
		CollectionID: collectionID,
		Name:         name,
		Importance:   *in.Importance,
		Weight:       in.Weight,
		Price:        in.Price,
		Rating:       in.Rating,
	}
	patchText(&it.AcquisitionDate, in.AcquisitionDate)
	patchText(&it.Description, in.Description)

	if it.Image, err = s.saveImage(ctx, img); err != nil {
		return nil, err
	}
	if _, err := s.store.CreateItem(ctx, it); err != nil {
		s.discard(ctx, it.Image)
		return nil, err
	}
	return it, nil
}

// UpdateItem applies in. Moving to another collection requires owning it as well.
func (s *Service) UpdateItem(ctx context.Context, caller *domain.Caller, id int64, in ItemInput, img *media.Image) (*domain.Item, error) {
	if _, err := s.authz.Item(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	it, err := s.store.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CollectionID != nil && *in.CollectionID != it.CollectionID {
		if _, err := s.authz.Collection(ctx, caller, *in.CollectionID); err != nil {
			return nil, err
		}
		it.CollectionID = *in.CollectionID
	}
	if err := patchRequiredText("name", &it.Name, in.Name); err != nil {
		return nil, err
	}
	if in.Importance != nil {
		it.Importance = *in.Importance
	}
	if in.Weight != nil {
		it.Weight = in.Weight
	}
	if in.Price != nil {
		it.Price = in.Price
	}
	if in.Rating != nil {
		it.Rating = in.Rating
	}
	patchText(&it.AcquisitionDate, in.AcquisitionDate)
	patchText(&it.Description, in.Description)

	old := it.Image
	if img != nil {
		if it.Image, err = s.saveImage(ctx, img); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateItem(ctx, it); err != nil {
		s.discard(ctx, replaced(it.Image, old))
		return nil, err
	}
	s.discard(ctx, replaced(old, it.Image))
	return it, nil
}

// RateItem sets the rating, or clears it when rating is nil.
func (s *Service) RateItem(ctx context.Context, caller *domain.Caller, id int64, rating *int) (*domain.Item, error) {
	if _, err := s.authz.Item(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := checkRating(rating); err != nil {
		return nil, err
	}
	it, err := s.store.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Rating = rating
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// SetItemImage replaces the item image.
func (s *Service) SetItemImage(ctx context.Context, caller *domain.Caller, id int64, img *media.Image) (*domain.Item, error) {
	if img == nil {
		if _, err := s.authz.Item(ctx, caller, id); err != nil {
			return nil, err
		}
		return nil, domain.Invalid("image", "is required")
	}
	return s.UpdateItem(ctx, caller, id, ItemInput{}, img)
}

// DeleteItem removes an item and its image.
func (s *Service) DeleteItem(ctx context.Context, caller *domain.Caller, id int64) error {
	if _, err := s.authz.Item(ctx, caller, id); err != nil {
		return err
	}
	it, err := s.store.FindItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, it.Image)
	return nil
}

func checkRating(rating *int) error {
	if rating != nil && (*rating < core.MinRating || *rating > core.MaxRating) {
		return domain.Invalid("rating", "must be between %d and %d", core.MinRating, core.MaxRating)
	}
	return nil
}
