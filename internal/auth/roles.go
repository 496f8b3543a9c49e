package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// RequireAuthenticated rejects requests without a principal.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return domain.ErrUnauthenticated
		}
		return c.Next()
	}
}

// RequireAdmin admits only administrators.
func RequireAdmin() fiber.Handler {
	return requireRole(func(r domain.Role) bool {
		switch r {
		case domain.RoleAdmin:
			return true
		case domain.RoleUser:
			return false
		default:
			return false
		}
	})
}

// RequireReader admits any known role.
func RequireReader() fiber.Handler {
	return requireRole(func(r domain.Role) bool {
		switch r {
		case domain.RoleUser, domain.RoleAdmin:
			return true
		default:
			return false
		}
	})
}

func requireRole(allowed func(domain.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return domain.ErrUnauthenticated
		}
		if !allowed(principal.Role) {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}
