package sqlite

import (
	"context"
	"fmt"

	"github.com/mmzou/contactbook/internal/errs"
	"github.com/mmzou/contactbook/internal/models"
	"github.com/mmzou/contactbook/internal/storage"
)

// ListContacts returns the contacts owned by userID that match the filter.
// Keyword matches name or phone as a substring; GroupID narrows to one group.
// Filters combine with AND.
func (s *SQLiteStore) ListContacts(ctx context.Context, userID int64, filter storage.ContactFilter) ([]models.Contact, error) {
	query := "SELECT id, name, phone, group_id, user_id, created_at FROM contacts WHERE user_id = ?"
	args := []any{userID}

	if filter.Keyword != "" {
		query += " AND (name LIKE ? OR phone LIKE ?)"
		pattern := "%" + filter.Keyword + "%"
		args = append(args, pattern, pattern)
	}
	if filter.GroupID != 0 {
		query += " AND group_id = ?"
		args = append(args, filter.GroupID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.GroupID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

// CreateContact inserts a contact row. Returns errs.ErrAlreadyExists when the
// owner already stores that phone number.
func (s *SQLiteStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO contacts (name, phone, group_id, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
		contact.Name, contact.Phone, contact.GroupID, contact.UserID, contact.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("phone %q: %w", contact.Phone, errs.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert contact: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read contact id: %w", err)
	}
	contact.ID = id
	return nil
}

// UpdateContact replaces name, phone and group of the contact matching
// (oldPhone, userID). The affected-row count is the not-found signal; there is
// no prior existence query, so a concurrent delete cannot race a stale check.
func (s *SQLiteStore) UpdateContact(ctx context.Context, userID int64, oldPhone string, contact *models.Contact) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE contacts SET name = ?, phone = ?, group_id = ? WHERE phone = ? AND user_id = ?",
		contact.Name, contact.Phone, contact.GroupID, oldPhone, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("phone %q: %w", contact.Phone, errs.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to update contact: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact with phone %q: %w", oldPhone, errs.ErrNotFound)
	}
	return nil
}

// DeleteContact removes the contact matching (phone, userID). The affected-row
// count is the not-found signal.
func (s *SQLiteStore) DeleteContact(ctx context.Context, userID int64, phone string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM contacts WHERE phone = ? AND user_id = ?",
		phone, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact with phone %q: %w", phone, errs.ErrNotFound)
	}
	return nil
}
