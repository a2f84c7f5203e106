// internal/storage/collection_storage.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
)

const collectionColumns = `id, user_id, name, type, description, created_at, image`

func scanCollection(row interface{ Scan(...any) error }) (*domain.Collection, error) {
	var c domain.Collection
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Description, &c.CreatedAt, &c.Image); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCollection inserts a collection and returns its id.
func (s *SQLStore) CreateCollection(ctx context.Context, c *domain.Collection) (int64, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	sqlStatement := `INSERT INTO collections (user_id, name, type, description, created_at, image) VALUES (?, ?, ?, ?, ?, ?)`
	result, err := s.DB.ExecContext(ctx, sqlStatement, c.UserID, c.Name, c.Type, c.Description, c.CreatedAt, c.Image)
	if err != nil {
		customLog.Warnf("Storage: Failed to insert collection '%s' for UserID %d: %v", c.Name, c.UserID, err)
		return 0, storageErr("create collection", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("create collection", err)
	}
	c.ID = id
	return id, nil
}

// FindCollection retrieves a collection by id.
func (s *SQLStore) FindCollection(ctx context.Context, id int64) (*domain.Collection, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+collectionColumns+` FROM collections WHERE id = ?`, id)
	c, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		customLog.Warnf("Storage: Failed to find collection %d: %v", id, err)
		return nil, storageErr("find collection", err)
	}
	return c, nil
}

// ListCollections returns one page of the collections owned by userID.
func (s *SQLStore) ListCollections(ctx context.Context, userID int64, opts domain.ListOptions) ([]domain.Collection, error) {
	opts = core.CollectionSort.Normalize(opts)
	// nolint:gosec // ORDER BY is built from the allow-listed sort columns only
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE user_id = ? ORDER BY ` + core.OrderClause(opts) + ` LIMIT ? OFFSET ?`
	rows, err := s.DB.QueryContext(ctx, query, userID, opts.Limit, opts.Offset)
	if err != nil {
		customLog.Warnf("Storage: Error listing collections for UserID %d: %v", userID, err)
		return nil, storageErr("list collections", err)
	}
	defer rows.Close()

	collections := make([]domain.Collection, 0)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			customLog.Warnf("Storage: Error scanning collection for UserID %d: %v", userID, err)
			return nil, storageErr("list collections", err)
		}
		collections = append(collections, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr("list collections", err)
	}
	return collections, nil
}

// UpdateCollection writes the editable columns of c. The owner column is never updated.
func (s *SQLStore) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	sqlStatement := `UPDATE collections SET name = ?, type = ?, description = ?, image = ? WHERE id = ?`
	result, err := s.DB.ExecContext(ctx, sqlStatement, c.Name, c.Type, c.Description, c.Image, c.ID)
	if err != nil {
		customLog.Warnf("Storage: Failed to update collection %d: %v", c.ID, err)
		return storageErr("update collection", err)
	}
	return checkAffected("update collection", result, ErrCollectionNotFound)
}

// DeleteCollection removes the collection; items and events go with it through ON DELETE CASCADE.
func (s *SQLStore) DeleteCollection(ctx context.Context, id int64) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		customLog.Warnf("Storage: Error deleting collection %d: %v", id, err)
		return storageErr("delete collection", err)
	}
	return checkAffected("delete collection", result, ErrCollectionNotFound)
}

// CollectionOwner resolves the owner of a collection.
func (s *SQLStore) CollectionOwner(ctx context.Context, id int64) (domain.Ownership, error) {
	o := domain.Ownership{CollectionID: id}
	err := s.DB.QueryRowContext(ctx, `SELECT user_id FROM collections WHERE id = ?`, id).Scan(&o.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return o, ErrCollectionNotFound
		}
		return o, storageErr("collection owner", err)
	}
	return o, nil
}
