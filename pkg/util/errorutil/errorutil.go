package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) *DomainError {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) *DomainError {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) *DomainError {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) *DomainError {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) *DomainError {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// sentinels maps domain errors to their client-visible shape. Messages are
// fixed so callers never learn more than the category of failure.
var sentinels = []struct {
	err   error
	build func() *DomainError
}{
	{domain.ErrUsernameTaken, func() *DomainError {
		return NewDomainError("USERNAME_TAKEN", "Error: Username is already taken!", http.StatusBadRequest, nil)
	}},
	{domain.ErrInvalidCredentials, func() *DomainError {
		return NewDomainError("INVALID_CREDENTIALS", "invalid username or password", http.StatusUnauthorized, nil)
	}},
	{domain.ErrInvalidAssertion, func() *DomainError {
		return NewDomainError("INVALID_ASSERTION", "federated authentication failed", http.StatusUnauthorized, nil)
	}},
	{domain.ErrUnauthenticated, unauthenticated},
	{domain.ErrMalformedToken, unauthenticated},
	{domain.ErrInvalidSignature, unauthenticated},
	{domain.ErrForbidden, func() *DomainError { return NewForbidden("insufficient role") }},
	{domain.ErrUserNotFound, func() *DomainError { return NewNotFound("user", nil) }},
	{domain.ErrRestaurantNotFound, func() *DomainError { return NewNotFound("Restaurant", nil) }},
	{domain.ErrRestaurantNameTaken, func() *DomainError { return NewConflict("Restaurant name already exists", nil) }},
}

func unauthenticated() *DomainError {
	return NewUnauthorized("authentication required")
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			de := s.build()
			de.Err = err
			return de
		}
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       strings.ToUpper(strings.ReplaceAll(http.StatusText(fiberErr.Code), " ", "_")),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}
	return NewInternalError(err)
}
