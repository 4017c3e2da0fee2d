package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmzou/contactbook/internal/errs"
	"github.com/mmzou/contactbook/internal/models"
)

// CreateUser inserts the user row and their default group in one transaction.
// A failure on either insert rolls back both, so a half-registered account is
// never visible. Returns errs.ErrAlreadyExists when the username is taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User, defaultGroup string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, created_at) VALUES (?, ?, ?, ?)",
		user.Username, user.PasswordHash, nullableString(user.Email), user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", user.Username, errs.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO groups (group_name, user_id) VALUES (?, ?)",
		defaultGroup, id,
	); err != nil {
		return fmt.Errorf("failed to insert default group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	user.ID = id
	return nil
}

// GetUserByUsername retrieves a user by their login name.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx,
		"SELECT id, username, password_hash, email, created_at FROM users WHERE username = ?",
		username)
}

// GetUserByID retrieves a user by their numeric id.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx,
		"SELECT id, username, password_hash, email, created_at FROM users WHERE id = ?",
		id)
}

func (s *SQLiteStore) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&email,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Email = email.String
	return user, nil
}

// nullableString maps "" to NULL so optional unique columns stay unique.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
