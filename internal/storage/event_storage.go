// internal/storage/event_storage.go
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
)

const eventColumns = `id, collection_id, name, location, date, description, rating, image`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	var (
		ev     domain.Event
		rating sql.NullInt64
	)
	err := row.Scan(&ev.ID, &ev.CollectionID, &ev.Name, &ev.Location, &ev.Date, &ev.Description, &rating, &ev.Image)
	if err != nil {
		return nil, err
	}
	ev.Rating = intPtr(rating)
	return &ev, nil
}

// CreateEvent inserts an event and returns its id.
func (s *SQLStore) CreateEvent(ctx context.Context, ev *domain.Event) (int64, error) {
	sqlStatement := `INSERT INTO events (collection_id, name, location, date, description, rating, image) VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := s.DB.ExecContext(ctx, sqlStatement, ev.CollectionID, ev.Name, ev.Location, ev.Date,
		ev.Description, nullInt(ev.Rating), ev.Image)
	if err != nil {
		customLog.Warnf("Storage: Failed to insert event '%s' into collection %d: %v", ev.Name, ev.CollectionID, err)
		return 0, storageErr("create event", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("create event", err)
	}
	ev.ID = id
	return id, nil
}

// FindEvent retrieves an event by id.
func (s *SQLStore) FindEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ev, err := scanEvent(s.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		customLog.Warnf("Storage: Failed to find event %d: %v", id, err)
		return nil, storageErr("find event", err)
	}
	return ev, nil
}

// ListEvents returns one page of a collection's events, by date ascending unless asked otherwise.
func (s *SQLStore) ListEvents(ctx context.Context, collectionID int64, opts domain.ListOptions) ([]domain.Event, error) {
	opts = core.EventSort.Normalize(opts)
	// nolint:gosec // ORDER BY is built from the allow-listed sort columns only
	query := `SELECT ` + eventColumns + ` FROM events WHERE collection_id = ? ORDER BY ` + core.OrderClause(opts) + ` LIMIT ? OFFSET ?`
	rows, err := s.DB.QueryContext(ctx, query, collectionID, opts.Limit, opts.Offset)
	if err != nil {
		customLog.Warnf("Storage: Error listing events for collection %d: %v", collectionID, err)
		return nil, storageErr("list events", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			customLog.Warnf("Storage: Error scanning event in collection %d: %v", collectionID, err)
			return nil, storageErr("list events", err)
		}
		events = append(events, *ev)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr("list events", err)
	}
	return events, nil
}

// UpdateEvent writes every editable column of ev, including collection_id.
func (s *SQLStore) UpdateEvent(ctx context.Context, ev *domain.Event) error {
	sqlStatement := `UPDATE events SET collection_id = ?, name = ?, location = ?, date = ?, description = ?, rating = ?, image = ? WHERE id = ?`
	result, err := s.DB.ExecContext(ctx, sqlStatement, ev.CollectionID, ev.Name, ev.Location, ev.Date,
		ev.Description, nullInt(ev.Rating), ev.Image, ev.ID)
	if err != nil {
		customLog.Warnf("Storage: Failed to update event %d: %v", ev.ID, err)
		return storageErr("update event", err)
	}
	return checkAffected("update event", result, ErrEventNotFound)
}

// DeleteEvent removes an event.
func (s *SQLStore) DeleteEvent(ctx context.Context, id int64) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		customLog.Warnf("Storage: Error deleting event %d: %v", id, err)
		return storageErr("delete event", err)
	}
	return checkAffected("delete event", result, ErrEventNotFound)
}

// EventOwner resolves event -> collection -> user in one join.
func (s *SQLStore) EventOwner(ctx context.Context, id int64) (domain.Ownership, error) {
	var o domain.Ownership
	query := `SELECT c.user_id, c.id FROM events e JOIN collections c ON c.id = e.collection_id WHERE e.id = ?`
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&o.OwnerID, &o.CollectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return o, ErrEventNotFound
		}
		return o, storageErr("event owner", err)
	}
	return o, nil
}
