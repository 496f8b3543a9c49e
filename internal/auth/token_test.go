package auth

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

const testSecret = "test-secret-key-for-unit-tests-0123456789"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTokenService(t *testing.T, opts ...TokenOption) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, 24*time.Hour, NewMemoryValiditySet(), opts...)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour, nil)
	assert.Error(t, err)

	_, err = NewTokenService("short", time.Hour, nil)
	assert.ErrorContains(t, err, "at least 32 bytes")
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService(t)

	before := time.Now()
	token, exp, err := svc.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.WithinDuration(t, before.Add(24*time.Hour), exp, 2*time.Second)
	assert.Equal(t, Valid, svc.Validate(token))
	assert.True(t, svc.IsValid(token))

	subject, err := svc.ResolveSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenService_IssueProducesDistinctTokens(t *testing.T) {
	svc := newTestTokenService(t)

	t1, _, err := svc.Issue("alice")
	require.NoError(t, err)
	t2, _, err := svc.Issue("alice")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.True(t, svc.IsValid(t1))
	assert.True(t, svc.IsValid(t2))
}

func TestTokenService_RevokeIsIdempotent(t *testing.T) {
	svc := newTestTokenService(t)
	token, _, err := svc.Issue("alice")
	require.NoError(t, err)

	svc.Revoke(token)
	assert.Equal(t, Revoked, svc.Validate(token))
	assert.False(t, svc.IsValid(token))

	svc.Revoke(token)
	assert.False(t, svc.IsValid(token))

	svc.Revoke("never-issued")
}

func TestTokenService_Expired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, WithClock(clock.Now))

	token, _, err := svc.Issue("alice")
	require.NoError(t, err)
	assert.True(t, svc.IsValid(token))

	clock.Advance(24*time.Hour - time.Second)
	assert.True(t, svc.IsValid(token))

	clock.Advance(time.Second)
	assert.Equal(t, Expired, svc.Validate(token))
	assert.False(t, svc.IsValid(token))

	// Subject resolution only checks the signature.
	subject, err := svc.ResolveSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenService_BadSignature(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenService("another-secret-key-for-unit-tests-987654", time.Hour, nil)
	require.NoError(t, err)

	foreign, _, err := other.Issue("mallory")
	require.NoError(t, err)

	assert.Equal(t, BadSignature, svc.Validate(foreign))
	assert.False(t, svc.IsValid(foreign))

	_, err = svc.ResolveSubject(foreign)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestTokenService_TamperedPayload(t *testing.T) {
	svc := newTestTokenService(t)
	token, _, err := svc.Issue("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	forgedStr, err := forged.SignedString([]byte("not-the-service-secret-0123456789abcdef"))
	require.NoError(t, err)
	spliced := strings.Split(forgedStr, ".")[1]

	tampered := parts[0] + "." + spliced + "." + parts[2]
	assert.Equal(t, BadSignature, svc.Validate(tampered))
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokenService(t)

	for _, tok := range []string{"", "clearly-not-a-jwt", "a.b.c"} {
		assert.Equal(t, Malformed, svc.Validate(tok), tok)
		assert.False(t, svc.IsValid(tok))
		_, err := svc.ResolveSubject(tok)
		assert.ErrorIs(t, err, domain.ErrMalformedToken, tok)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestTokenService(t)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.False(t, svc.IsValid(tok))
}

func TestTokenService_SweepExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	set := NewMemoryValiditySet()
	svc, err := NewTokenService(testSecret, time.Hour, set, WithClock(clock.Now))
	require.NoError(t, err)

	old, _, err := svc.Issue("alice")
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	fresh, _, err := svc.Issue("bob")
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	assert.Equal(t, 1, svc.SweepExpired())
	assert.Equal(t, 1, set.Len())
	assert.False(t, svc.IsValid(old))
	assert.True(t, svc.IsValid(fresh))
}

func TestTokenService_ConcurrentIssueAndRevoke(t *testing.T) {
	svc := newTestTokenService(t)

	const n = 64
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, _, err := svc.Issue(fmt.Sprintf("user-%d", i))
			if err == nil {
				tokens[i] = tok
			}
		}(i)
	}
	wg.Wait()

	for _, tok := range tokens {
		require.NotEmpty(t, tok)
		assert.True(t, svc.IsValid(tok))
	}

	victim := tokens[0]
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i == 0 {
				svc.Revoke(victim)
				return
			}
			svc.IsValid(tokens[i])
		}(i)
	}
	wg.Wait()

	assert.False(t, svc.IsValid(victim))
	for _, tok := range tokens[1:] {
		assert.True(t, svc.IsValid(tok))
	}
}

func TestValidationResultString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "expired", Expired.String())
	assert.Equal(t, "bad_signature", BadSignature.String())
	assert.Equal(t, "malformed", Malformed.String())
	assert.Equal(t, "revoked", Revoked.String())
}
