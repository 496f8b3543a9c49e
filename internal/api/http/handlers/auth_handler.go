package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.Signup(c.UserContext(), req.Username, req.Password, req.Name); err != nil {
		return err
	}
	return c.SendString("User registered successfully!")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	c.Cookie(auth.SessionCookie(session.Token, h.auth.TokenService().TTL()))
	return c.SendString("Login successful")
}

// Google handles POST /api/auth/google.
func (h *AuthHandler) Google(c *fiber.Ctx) error {
	var req dto.GoogleAuthRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.auth.FederatedLogin(c.UserContext(), req.Credential)
	if err != nil {
		return err
	}
	c.Cookie(auth.SessionCookie(session.Token, h.auth.TokenService().TTL()))
	return c.JSON(dto.GoogleAuthResponse{
		Message:  "Google login successful",
		Username: session.Username,
		Name:     session.DisplayName,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	info, err := h.auth.CurrentUser(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserInfoResponse(info))
}

// Logout handles POST /api/auth/logout. It succeeds with or without a cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(auth.SessionCookieName); token != "" {
		h.auth.Logout(c.UserContext(), token)
	}
	c.Cookie(auth.ExpiredSessionCookie())
	return c.SendString("Logout successful")
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(out)
}
