package dto

import "github.com/spec-kit/restaurant-service/internal/domain"

// SignupRequest payload for POST /api/auth/signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,notblank,max=100"`
	Password string `json:"password" validate:"required,notblank,max=128"`
	Name     string `json:"name" validate:"required,notblank,max=100"`
}

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

// GoogleAuthRequest carries the Google ID token issued to the frontend.
type GoogleAuthRequest struct {
	Credential string `json:"credential" validate:"required,notblank"`
}

// GoogleAuthResponse is returned after a federated login.
type GoogleAuthResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// UserInfoResponse describes the current user.
type UserInfoResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// NewUserInfoResponse converts domain user info.
func NewUserInfoResponse(info *domain.UserInfo) UserInfoResponse {
	return UserInfoResponse{
		Username: info.Username,
		Name:     info.DisplayName,
		Role:     info.Role.String(),
	}
}
