// internal/storage/item_storage.go
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
)

const itemColumns = `id, collection_id, name, importance, weight, price, acquisition_date, rating, description, image`

func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	var (
		it            domain.Item
		weight, price sql.NullFloat64
		rating        sql.NullInt64
	)
	err := row.Scan(&it.ID, &it.CollectionID, &it.Name, &it.Importance, &weight, &price,
		&it.AcquisitionDate, &rating, &it.Description, &it.Image)
	if err != nil {
		return nil, err
	}
	it.Weight = floatPtr(weight)
	it.Price = floatPtr(price)
	it.Rating = intPtr(rating)
	return &it, nil
}

// CreateItem inserts an item and returns its id.
func (s *SQLStore) CreateItem(ctx context.Context, it *domain.Item) (int64, error) {
	sqlStatement := `INSERT INTO items (collection_id, name, importance, weight, price, acquisition_date, rating, description, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.DB.ExecContext(ctx, sqlStatement, it.CollectionID, it.Name, it.Importance,
		nullFloat(it.Weight), nullFloat(it.Price), it.AcquisitionDate, nullInt(it.Rating), it.Description, it.Image)
	if err != nil {
		customLog.Warnf("Storage: Failed to insert item '%s' into collection %d: %v", it.Name, it.CollectionID, err)
		return 0, storageErr("create item", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("create item", err)
	}
	it.ID = id
	return id, nil
}

// FindItem retrieves an item by id.
func (s *SQLStore) FindItem(ctx context.Context, id int64) (*domain.Item, error) {
	it, err := scanItem(s.DB.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		customLog.Warnf("Storage: Failed to find item %d: %v", id, err)
		return nil, storageErr("find item", err)
	}
	return it, nil
}

// ListItems returns one page of a collection's items.
func (s *SQLStore) ListItems(ctx context.Context, collectionID int64, opts domain.ListOptions) ([]domain.Item, error) {
	opts = core.ItemSort.Normalize(opts)
	// nolint:gosec // ORDER BY is built from the allow-listed sort columns only
	query := `SELECT ` + itemColumns + ` FROM items WHERE collection_id = ? ORDER BY ` + core.OrderClause(opts) + ` LIMIT ? OFFSET ?`
	rows, err := s.DB.QueryContext(ctx, query, collectionID, opts.Limit, opts.Offset)
	if err != nil {
		customLog.Warnf("Storage: Error listing items for collection %d: %v", collectionID, err)
		return nil, storageErr("list items", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			customLog.Warnf("Storage: Error scanning item in collection %d: %v", collectionID, err)
			return nil, storageErr("list items", err)
		}
		items = append(items, *it)
	}
	if err = rows.Err(); err != nil {
		return nil, storageErr("list items", err)
	}
	return items, nil
}

// UpdateItem writes every editable column of it, including collection_id. Callers are
// responsible for authorizing a move to another collection.
func (s *SQLStore) UpdateItem(ctx context.Context, it *domain.Item) error {
	sqlStatement := `UPDATE items SET collection_id = ?, name = ?, importance = ?, weight = ?, price = ?,
		acquisition_date = ?, rating = ?, description = ?, image = ? WHERE id = ?`
	result, err := s.DB.ExecContext(ctx, sqlStatement, it.CollectionID, it.Name, it.Importance,
		nullFloat(it.Weight), nullFloat(it.Price), it.AcquisitionDate, nullInt(it.Rating), it.Description, it.Image, it.ID)
	if err != nil {
		customLog.Warnf("Storage: Failed to update item %d: %v", it.ID, err)
		return storageErr("update item", err)
	}
	return checkAffected("update item", result, ErrItemNotFound)
}

// DeleteItem removes an item.
func (s *SQLStore) DeleteItem(ctx context.Context, id int64) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		customLog.Warnf("Storage: Error deleting item %d: %v", id, err)
		return storageErr("delete item", err)
	}
	return checkAffected("delete item", result, ErrItemNotFound)
}

// ItemOwner resolves item -> collection -> user in one join.
func (s *SQLStore) ItemOwner(ctx context.Context, id int64) (domain.Ownership, error) {
	var o domain.Ownership
	query := `SELECT c.user_id, c.id FROM items i JOIN collections c ON c.id = i.collection_id WHERE i.id = ?`
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&o.OwnerID, &o.CollectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return o, ErrItemNotFound
		}
		return o, storageErr("item owner", err)
	}
	return o, nil
}
