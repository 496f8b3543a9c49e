package domain

import "errors"

var (
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidAssertion    = errors.New("invalid identity assertion")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrMalformedToken      = errors.New("malformed token")
	ErrInvalidSignature    = errors.New("invalid token signature")
	ErrUserNotFound        = errors.New("user not found")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrRestaurantNameTaken = errors.New("restaurant name already exists")
)
