// internal/storage/database.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Driver registration

	"github.com/Annany2002/collecta-backend/config"
)

// schema is applied on every start; every statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	{"users", `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		date_of_birth TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		profile_picture TEXT NOT NULL DEFAULT ''
	);`},
	{"collections", `
	CREATE TABLE IF NOT EXISTS collections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		image TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`},
	{"items", `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		collection_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		importance INTEGER NOT NULL CHECK (importance BETWEEN 0 AND 10),
		weight REAL,
		price REAL,
		acquisition_date TEXT NOT NULL DEFAULT '',
		rating INTEGER CHECK (rating IS NULL OR rating BETWEEN 0 AND 5),
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (collection_id) REFERENCES collections(id) ON DELETE CASCADE
	);`},
	{"events", `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		collection_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		rating INTEGER CHECK (rating IS NULL OR rating BETWEEN 0 AND 5),
		image TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (collection_id) REFERENCES collections(id) ON DELETE CASCADE
	);`},
	{"collections index", `CREATE INDEX IF NOT EXISTS idx_collections_user ON collections(user_id);`},
	{"items index", `CREATE INDEX IF NOT EXISTS idx_items_collection ON items(collection_id);`},
	{"events index", `CREATE INDEX IF NOT EXISTS idx_events_collection ON events(collection_id, date);`},
}

// SQLStore implements Store on SQLite.
type SQLStore struct {
	DB *sql.DB
}

// ConnectDB initializes the connection pool for the SQLite database
// and ensures the required tables exist.
func ConnectDB(cfg *config.Config) (*SQLStore, error) {
	dbPath := filepath.Join(cfg.MetadataDbDir, cfg.MetadataDbFile)
	customLog.Printf("Storage: Initializing database: %s", dbPath)

	if err := os.MkdirAll(cfg.MetadataDbDir, 0o750); err != nil {
		customLog.Warnf("Storage: Error creating data directory '%s': %v", cfg.MetadataDbDir, err)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Foreign keys are required for the collection cascade.
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		customLog.Warnf("Storage: Failed to open db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to ping db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	customLog.Println("Storage: Database connection successful.")

	for _, stmt := range schema {
		if _, err = db.Exec(stmt.sql); err != nil {
			db.Close()
			customLog.Warnf("Storage: Failed to ensure %s: %v", stmt.name, err)
			return nil, fmt.Errorf("failed to ensure %s: %w", stmt.name, err)
		}
		customLog.Debugf("Storage: %s ensured.", stmt.name)
	}

	return &SQLStore{DB: db}, nil
}

// Ping verifies the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLStore) Close() error {
	return s.DB.Close()
}

// nullFloat and nullInt convert optional values for database/sql.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// checkAffected turns a zero-row write into notFound.
func checkAffected(op string, result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		customLog.Warnf("Storage: Error getting RowsAffected for %s: %v", op, err)
		return storageErr(op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
