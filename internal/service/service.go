// internal/service/service.go

// Package service implements the user, collection, item and event operations. Every
// operation takes the caller explicitly and checks ownership through access.Authorizer
// before it reads or writes a row.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/access"
	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/logger"
	"github.com/Annany2002/collecta-backend/internal/media"
	"github.com/Annany2002/collecta-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// Service holds the dependencies shared by all operations.
type Service struct {
	store storage.Store
	authz *access.Authorizer
	files media.Storage
	cfg   *config.Config
	now   func() time.Time
}

// New wires a Service.
func New(store storage.Store, files media.Storage, cfg *config.Config) *Service {
	return &Service{
		store: store,
		authz: access.NewAuthorizer(store),
		files: files,
		cfg:   cfg,
		now:   time.Now,
	}
}

// SetClock replaces the clock used by date rules.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// saveImage stores img if one was uploaded. A nil img yields an empty path.
func (s *Service) saveImage(ctx context.Context, img *media.Image) (string, error) {
	if img == nil {
		return "", nil
	}
	return img.Save(ctx, s.files)
}

// discard removes a stored file. Failures are logged and otherwise ignored.
func (s *Service) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.files.Delete(ctx, path); err != nil {
		customLog.Warnf("Service: Could not remove file '%s': %v", path, err)
	}
}

// replaced returns the path to discard after a successful write that swapped old for
// current, or "" when nothing changed.
func replaced(old, current string) string {
	if old != "" && old != current {
		return old
	}
	return ""
}

// requireText trims *v and rejects nil or blank values.
func requireText(field string, v *string) (string, error) {
	if v == nil {
		return "", domain.Invalid(field, "is required")
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return "", domain.Invalid(field, "is required")
	}
	return trimmed, nil
}

// patchText applies an optional text field.
func patchText(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// patchRequiredText applies an optional field that may not become blank.
func patchRequiredText(field string, dst *string, v *string) error {
	if v == nil {
		return nil
	}
	trimmed, err := requireText(field, v)
	if err != nil {
		return err
	}
	*dst = trimmed
	return nil
}

// forEachPage walks every page of a list call.
func forEachPage[T any](ctx context.Context, list func(context.Context, domain.ListOptions) ([]T, error), fn func(T)) error {
	opts := domain.ListOptions{Limit: core.MaxLimit}
	for {
		rows, err := list(ctx, opts)
		if err != nil {
			return err
		}
		for _, r := range rows {
			fn(r)
		}
		if len(rows) < opts.Limit {
			return nil
		}
		opts.Offset += len(rows)
	}
}
