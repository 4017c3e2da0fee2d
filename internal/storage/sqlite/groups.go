package sqlite

import (
	"context"
	"fmt"

	"github.com/mmzou/contactbook/internal/errs"
	"github.com/mmzou/contactbook/internal/models"
)

// ListGroups returns all groups owned by userID.
func (s *SQLiteStore) ListGroups(ctx context.Context, userID int64) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_name, user_id FROM groups WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.GroupName, &g.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// CreateGroup inserts a group row. Returns errs.ErrAlreadyExists when the
// owner already has a group with that name.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (group_name, user_id) VALUES (?, ?)",
		group.GroupName, group.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("group %q: %w", group.GroupName, errs.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read group id: %w", err)
	}
	group.ID = id
	return nil
}

// GroupExists reports whether userID owns a group with the given id.
func (s *SQLiteStore) GroupExists(ctx context.Context, userID, groupID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM groups WHERE id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return n > 0, nil
}
