package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

// Reasons a credential check failed. Both wrap domain.ErrInvalidCredentials
// and are meant for server-side logging only.
var (
	ErrUnknownUsername = errors.New("unknown username")
	ErrWrongPassword   = errors.New("wrong password")
)

// CredentialAuthenticator verifies a username and password pair.
type CredentialAuthenticator struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

// NewCredentialAuthenticator constructs an authenticator.
func NewCredentialAuthenticator(users repository.UserRepository, hasher PasswordHasher) *CredentialAuthenticator {
	return &CredentialAuthenticator{users: users, hasher: hasher}
}

// Authenticate returns the user when the password matches.
func (a *CredentialAuthenticator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, ErrUnknownUsername)
		}
		return nil, err
	}
	if !a.hasher.Verify(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, ErrWrongPassword)
	}
	return user, nil
}
