// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmzou/contactbook/internal/models"
)

// ContactFilter narrows a contact listing. Zero values disable a filter.
type ContactFilter struct {
	// Keyword matches contacts whose name or phone contains it as a substring.
	Keyword string

	// GroupID restricts results to one group; 0 means all groups.
	GroupID int64
}

// Store defines the interface for contact-book storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Conflict and not-found outcomes are reported as errs.ErrAlreadyExists and
// errs.ErrNotFound (possibly wrapped) so callers can map them without knowing
// the backend.
type Store interface {
	// CreateUser inserts the user and their default group in one transaction.
	// Either both rows persist or neither does. The user.ID field is populated
	// on success.
	CreateUser(ctx context.Context, user *models.User, defaultGroup string) error

	// GetUserByUsername returns the user with the given username,
	// or (nil, nil) if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns the user with the given id, or (nil, nil) if no
	// such user exists.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// ListGroups returns all groups owned by userID. Order is not guaranteed.
	ListGroups(ctx context.Context, userID int64) ([]models.Group, error)

	// CreateGroup inserts a group. The group.ID field is populated on success.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GroupExists reports whether userID owns a group with the given id.
	GroupExists(ctx context.Context, userID, groupID int64) (bool, error)

	// ListContacts returns the contacts owned by userID that match the filter.
	// Order is not guaranteed.
	ListContacts(ctx context.Context, userID int64, filter ContactFilter) ([]models.Contact, error)

	// CreateContact inserts a contact. The contact.ID field is populated on success.
	CreateContact(ctx context.Context, contact *models.Contact) error

	// UpdateContact replaces the name, phone and group of the contact matching
	// (oldPhone, userID). Zero rows affected is reported as errs.ErrNotFound.
	UpdateContact(ctx context.Context, userID int64, oldPhone string, contact *models.Contact) error

	// DeleteContact removes the contact matching (phone, userID).
	// Zero rows affected is reported as errs.ErrNotFound.
	DeleteContact(ctx context.Context, userID int64, phone string) error

	// Close releases any resources held by the store.
	Close() error
}
