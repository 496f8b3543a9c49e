package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

const principalKey = "auth_principal"

// RequestAuthorizer resolves the session cookie into a principal. It never
// rejects a request; routes that need identity use the Require* gates.
type RequestAuthorizer struct {
	tokens *TokenService
	users  repository.UserRepository
	logger *zap.Logger
}

// NewRequestAuthorizer constructs middleware.
func NewRequestAuthorizer(tokens *TokenService, users repository.UserRepository, logger *zap.Logger) *RequestAuthorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestAuthorizer{tokens: tokens, users: users, logger: logger}
}

// Handle attaches the principal when the cookie carries a valid token.
func (m *RequestAuthorizer) Handle(c *fiber.Ctx) error {
	token := c.Cookies(SessionCookieName)
	if token == "" || !m.tokens.IsValid(token) {
		return c.Next()
	}

	username, err := m.tokens.ResolveSubject(token)
	if err != nil {
		return c.Next()
	}

	user, err := m.users.FindByUsername(c.UserContext(), username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			m.logger.Warn("principal lookup failed", zap.String("username", username), zap.Error(err))
		}
		return c.Next()
	}

	c.Locals(principalKey, &domain.Principal{Username: user.Username, Role: user.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
