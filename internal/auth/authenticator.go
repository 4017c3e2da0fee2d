package auth

import (
	"context"

	"github.com/mmzou/contactbook/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// OAuth, etc.) without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account with the given credential and
	// returns the created user. The user's default group is created in the
	// same transaction.
	Register(ctx context.Context, username, email, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful. The same error is returned for an unknown username and a
	// wrong password, so callers cannot enumerate usernames.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)
}
