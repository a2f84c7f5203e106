// internal/service/events.go
package service

import (
	"context"

	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/media"
)

// EventInput is the whitelist of caller-settable event fields. Nil fields are left
// unchanged on update; CollectionID moves the event.
type EventInput struct {
	Name         *string `json:"name" form:"name" validate:"omitnil,max=200"`
	Location     *string `json:"location" form:"location" validate:"omitnil,max=200"`
	Date         *string `json:"date" form:"date" validate:"omitnil,datetime=2006-01-02"`
	Description  *string `json:"description" form:"description" validate:"omitnil,max=2000"`
	Rating       *int    `json:"rating" form:"rating" validate:"omitnil,min=0,max=5"`
	CollectionID *int64  `json:"collection_id" form:"collection_id" validate:"omitnil,gt=0"`
}

// checkEventRating allows a rating only once the event date has arrived.
func (s *Service) checkEventRating(ev *domain.Event) error {
	if ev.Rating != nil && !core.IsPast(ev.Date, s.now()) {
		return domain.Invalid("rating", "an event can only be rated once it has taken place")
	}
	return nil
}

// ListEvents returns one page of a collection's events.
func (s *Service) ListEvents(ctx context.Context, caller *domain.Caller, collectionID int64, opts domain.ListOptions) ([]domain.Event, error) {
	if _, err := s.authz.Collection(ctx, caller, collectionID); err != nil {
		return nil, err
	}
	return s.store.ListEvents(ctx, collectionID, opts)
}

// GetEvent returns an event in a collection the caller owns.
func (s *Service) GetEvent(ctx context.Context, caller *domain.Caller, id int64) (*domain.Event, error) {
	if _, err := s.authz.Event(ctx, caller, id); err != nil {
		return nil, err
	}
	return s.store.FindEvent(ctx, id)
}

// CreateEvent adds an event to collectionID. Name and date are required.
func (s *Service) CreateEvent(ctx context.Context, caller *domain.Caller, collectionID int64, in EventInput, img *media.Image) (*domain.Event, error) {
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
	date, err := requireText("date", in.Date)
	if err != nil {
		return nil, err
	}
	if in.CollectionID != nil && *in.CollectionID != collectionID {
		return nil, domain.Invalid("collection_id", "does not match the collection in the path")
	}

	ev := &domain.Event{CollectionID: collectionID, Name: name, Date: date, Rating: in.Rating}
	patchText(&ev.Location, in.Location)
	patchText(&ev.Description, in.Description)
	if err := s.checkEventRating(ev); err != nil {
		return nil, err
	}

	if ev.Image, err = s.saveImage(ctx, img); err != nil {
		return nil, err
	}
	if _, err := s.store.CreateEvent(ctx, ev); err != nil {
		s.discard(ctx, ev.Image)
		return nil, err
	}
	return ev, nil
}

// UpdateEvent applies in. Moving to another collection requires owning it as well.
func (s *Service) UpdateEvent(ctx context.Context, caller *domain.Caller, id int64, in EventInput, img *media.Image) (*domain.Event, error) {
	if _, err := s.authz.Event(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	ev, err := s.store.FindEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CollectionID != nil && *in.CollectionID != ev.CollectionID {
		if _, err := s.authz.Collection(ctx, caller, *in.CollectionID); err != nil {
			return nil, err
		}
		ev.CollectionID = *in.CollectionID
	}
	if err := patchRequiredText("name", &ev.Name, in.Name); err != nil {
		return nil, err
	}
	if err := patchRequiredText("date", &ev.Date, in.Date); err != nil {
		return nil, err
	}
	patchText(&ev.Location, in.Location)
	patchText(&ev.Description, in.Description)
	if in.Rating != nil {
		ev.Rating = in.Rating
	}
	if in.Rating != nil || in.Date != nil {
		if err := s.checkEventRating(ev); err != nil {
			return nil, err
		}
	}

	old := ev.Image
	if img != nil {
		if ev.Image, err = s.saveImage(ctx, img); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateEvent(ctx, ev); err != nil {
		s.discard(ctx, replaced(ev.Image, old))
		return nil, err
	}
	s.discard(ctx, replaced(old, ev.Image))
	return ev, nil
}

// RateEvent sets the rating of a past event, or clears it when rating is nil.
func (s *Service) RateEvent(ctx context.Context, caller *domain.Caller, id int64, rating *int) (*domain.Event, error) {
	if _, err := s.authz.Event(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := checkRating(rating); err != nil {
		return nil, err
	}
	ev, err := s.store.FindEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.Rating = rating
	if err := s.checkEventRating(ev); err != nil {
		return nil, err
	}
	if err := s.store.UpdateEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// SetEventImage replaces the event image.
func (s *Service) SetEventImage(ctx context.Context, caller *domain.Caller, id int64, img *media.Image) (*domain.Event, error) {
	if img == nil {
		if _, err := s.authz.Event(ctx, caller, id); err != nil {
			return nil, err
		}
		return nil, domain.Invalid("image", "is required")
	}
	return s.UpdateEvent(ctx, caller, id, EventInput{}, img)
}

// DeleteEvent removes an event and its image.
func (s *Service) DeleteEvent(ctx context.Context, caller *domain.Caller, id int64) error {
	if _, err := s.authz.Event(ctx, caller, id); err != nil {
		return err
	}
	ev, err := s.store.FindEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, ev.Image)
	return nil
}
