package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

func newAuthorizerApp(t *testing.T) (*fiber.App, *TokenService, repository.UserRepository) {
	t.Helper()
	tokens := newTestTokenService(t)
	users := repository.NewMemoryUserRepository()
	seedUser(t, users, testHasher(), "alice", "pw1", domain.RoleUser)
	seedUser(t, users, testHasher(), "root", "pw1", domain.RoleAdmin)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			switch err {
			case domain.ErrUnauthenticated:
				return c.SendStatus(http.StatusUnauthorized)
			case domain.ErrForbidden:
				return c.SendStatus(http.StatusForbidden)
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	app.Use(NewRequestAuthorizer(tokens, users, zaptest.NewLogger(t)).Handle)

	app.Get("/whoami", func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(p.Username + ":" + p.Role.String())
	})
	app.Get("/read", RequireReader(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/private", RequireAuthenticated(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app, tokens, users
}

func doGet(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequestAuthorizer_AttachesPrincipal(t *testing.T) {
	app, tokens, _ := newAuthorizerApp(t)
	tok, _, err := tokens.Issue("alice")
	require.NoError(t, err)

	status, body := doGet(t, app, "/whoami", tok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice:USER", body)
}

func TestRequestAuthorizer_ProceedsAnonymously(t *testing.T) {
	app, tokens, _ := newAuthorizerApp(t)

	revoked, _, err := tokens.Issue("alice")
	require.NoError(t, err)
	tokens.Revoke(revoked)

	orphan, _, err := tokens.Issue("ghost")
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"no cookie":    "",
		"garbage":      "not-a-token",
		"revoked":      revoked,
		"unknown user": orphan,
	} {
		status, body := doGet(t, app, "/whoami", tok)
		assert.Equal(t, http.StatusOK, status, name)
		assert.Equal(t, "anonymous", body, name)
	}
}

func TestRoleGates(t *testing.T) {
	app, tokens, _ := newAuthorizerApp(t)
	userTok, _, err := tokens.Issue("alice")
	require.NoError(t, err)
	adminTok, _, err := tokens.Issue("root")
	require.NoError(t, err)

	tests := []struct {
		path   string
		token  string
		status int
	}{
		{"/private", "", http.StatusUnauthorized},
		{"/private", userTok, http.StatusOK},
		{"/read", "", http.StatusUnauthorized},
		{"/read", userTok, http.StatusOK},
		{"/read", adminTok, http.StatusOK},
		{"/admin", userTok, http.StatusForbidden},
		{"/admin", adminTok, http.StatusOK},
	}
	for _, tt := range tests {
		status, _ := doGet(t, app, tt.path, tt.token)
		assert.Equal(t, tt.status, status, tt.path)
	}
}
