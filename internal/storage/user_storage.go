// internal/storage/user_storage.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Annany2002/collecta-backend/internal/domain"
)

const userColumns = `id, name, username, email, password_hash, date_of_birth, created_at, profile_picture`

// uniqueViolation maps a UNIQUE constraint failure on users to the matching conflict error.
func uniqueViolation(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		switch {
		case strings.Contains(sqliteErr.Error(), "users.email"):
			return ErrEmailExists
		case strings.Contains(sqliteErr.Error(), "users.username"):
			return ErrUsernameExists
		}
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Username, &user.Email, &user.PasswordHash,
		&user.DateOfBirth, &user.CreatedAt, &user.ProfilePicture)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user and returns its id.
func (s *SQLStore) CreateUser(ctx context.Context, u *domain.User) (int64, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	sqlStatement := `INSERT INTO users (name, username, email, password_hash, date_of_birth, created_at, profile_picture)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := s.DB.ExecContext(ctx, sqlStatement, u.Name, u.Username, u.Email, u.PasswordHash,
		u.DateOfBirth, u.CreatedAt, u.ProfilePicture)
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return 0, conflict
		}
		customLog.Warnf("Storage: Failed to insert user %s: %v", u.Email, err)
		return 0, storageErr("create user", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		customLog.Warnf("Storage: Failed to get last insert ID for user %s: %v", u.Email, err)
		return 0, storageErr("create user", err)
	}
	u.ID = id
	return id, nil
}

// FindUserByID retrieves a user by id.
func (s *SQLStore) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		customLog.Warnf("Storage: Failed to find user by id %d: %v", id, err)
		return nil, storageErr("find user", err)
	}
	return user, nil
}

// FindUserByLogin retrieves a user by email or username.
func (s *SQLStore) FindUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? OR username = ? LIMIT 1`, login, login)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		customLog.Warnf("Storage: Failed to find user by login %s: %v", login, err)
		return nil, storageErr("find user", err)
	}
	return user, nil
}

// UpdateUser writes the profile columns of u. Password and creation date are untouched.
func (s *SQLStore) UpdateUser(ctx context.Context, u *domain.User) error {
	sqlStatement := `UPDATE users SET name = ?, username = ?, email = ?, date_of_birth = ?, profile_picture = ? WHERE id = ?`
	result, err := s.DB.ExecContext(ctx, sqlStatement, u.Name, u.Username, u.Email, u.DateOfBirth, u.ProfilePicture, u.ID)
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return conflict
		}
		customLog.Warnf("Storage: Failed to update user %d: %v", u.ID, err)
		return storageErr("update user", err)
	}
	return checkAffected("update user", result, ErrUserNotFound)
}
