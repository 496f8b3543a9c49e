package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// IdentityVerifier checks a third-party identity assertion.
type IdentityVerifier interface {
	Verify(ctx context.Context, assertion, audience string) (*domain.FederatedIdentity, error)
}

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// GoogleVerifier validates Google ID tokens against Google's published
// signing keys.
type GoogleVerifier struct {
	validate validateFunc
	timeout  time.Duration
}

// NewGoogleVerifier bounds each verification by timeout.
func NewGoogleVerifier(timeout time.Duration) *GoogleVerifier {
	return newGoogleVerifier(idtoken.Validate, timeout)
}

func newGoogleVerifier(validate validateFunc, timeout time.Duration) *GoogleVerifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GoogleVerifier{validate: validate, timeout: timeout}
}

// Verify checks signature, issuer, expiry and audience, then extracts the
// email and display name. Every failure wraps domain.ErrInvalidAssertion.
func (v *GoogleVerifier) Verify(ctx context.Context, assertion, audience string) (*domain.FederatedIdentity, error) {
	if strings.TrimSpace(assertion) == "" {
		return nil, fmt.Errorf("%w: empty credential", domain.ErrInvalidAssertion)
	}
	if audience == "" {
		return nil, fmt.Errorf("%w: audience not configured", domain.ErrInvalidAssertion)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	payload, err := v.validate(ctx, assertion, audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidAssertion, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: email claim missing", domain.ErrInvalidAssertion)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("%w: email not verified", domain.ErrInvalidAssertion)
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}

	return &domain.FederatedIdentity{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
	}, nil
}
