package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName carries the session token.
const SessionCookieName = "token"

// SessionCookie builds the cookie that hands a fresh token to the browser.
func SessionCookie(token string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ExpiredSessionCookie tells the browser to drop the session cookie now.
func ExpiredSessionCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
