// Package auth handles user credentials and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/settleup/internal/models"
)

// Authenticator registers accounts and verifies credentials. Password login is
// the only implementation today; the interface keeps AuthService independent
// of it.
type Authenticator interface {
	// Register creates an account. Returns ErrEmailExists when the email is
	// taken and ErrWeakPassword when the credential is rejected.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user whose credential matches, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	ValidateCredential(credential string) error
}
