package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// MinSecretLength is the shortest signing secret accepted for HS256.
const MinSecretLength = 32

// ValidationResult is the outcome of checking a session token.
type ValidationResult uint8

const (
	Valid ValidationResult = iota
	Expired
	BadSignature
	Malformed
	Revoked
)

func (r ValidationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case Expired:
		return "expired"
	case BadSignature:
		return "bad_signature"
	case Malformed:
		return "malformed"
	case Revoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// Claims describes the session token payload.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues, validates and revokes session tokens.
type TokenService struct {
	key    []byte
	ttl    time.Duration
	valid  ValiditySet
	now    func() time.Time
	logger *zap.Logger
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// WithTokenLogger sets the logger used for validation diagnostics.
func WithTokenLogger(logger *zap.Logger) TokenOption {
	return func(s *TokenService) { s.logger = logger }
}

// NewTokenService derives the signing key from secret. A missing or short
// secret is a startup error.
func NewTokenService(secret string, ttl time.Duration, set ValiditySet, opts ...TokenOption) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if set == nil {
		set = NewMemoryValiditySet()
	}
	s := &TokenService{
		key:    []byte(secret),
		ttl:    ttl,
		valid:  set,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the lifetime stamped on new tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for username and records it as valid.
func (s *TokenService) Issue(username string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, err
	}
	s.valid.Add(tokenString, expiresAt)
	return tokenString, expiresAt, nil
}

// ResolveSubject verifies the signature and returns the embedded username.
// Expiry and revocation are not checked here; gate on IsValid first.
func (s *TokenService) ResolveSubject(tokenStr string) (string, error) {
	claims, err := s.parse(tokenStr, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return "", domain.ErrInvalidSignature
		}
		return "", domain.ErrMalformedToken
	}
	if claims.Subject == "" {
		return "", domain.ErrMalformedToken
	}
	return claims.Subject, nil
}

// Validate classifies a token. Signature, expiry and validity set
// membership must all pass for Valid.
func (s *TokenService) Validate(tokenStr string) ValidationResult {
	if _, err := s.parse(tokenStr); err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Expired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return BadSignature
		default:
			return Malformed
		}
	}
	if !s.valid.Contains(tokenStr) {
		return Revoked
	}
	return Valid
}

// IsValid reports whether the token may be honored. The failure reason is
// only logged.
func (s *TokenService) IsValid(tokenStr string) bool {
	result := s.Validate(tokenStr)
	if result != Valid {
		s.logger.Debug("token rejected", zap.Stringer("reason", result))
		return false
	}
	return true
}

// Revoke stops honoring the token. Revoking an unknown token is a no-op.
func (s *TokenService) Revoke(tokenStr string) {
	s.valid.Remove(tokenStr)
}

// SweepExpired drops expired tokens from the validity set.
func (s *TokenService) SweepExpired() int {
	return s.valid.RemoveExpired(s.now())
}

func (s *TokenService) parse(tokenStr string, extra ...jwt.ParserOption) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	opts = append(opts, extra...)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenMalformed
	}
	return claims, nil
}
