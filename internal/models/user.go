package models

// User represents a registered account.
//
// Accounts are created by registration and never updated or deleted through
// the API. Deleting a user row cascades to that user's groups and contacts
// at the schema level.
type User struct {
	// ID is the numeric identifier assigned by the database.
	ID int64

	// Username is the unique login name.
	Username string

	// Email is optional; when set it must be unique across users.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
