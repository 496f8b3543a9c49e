package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

const testAudience = "client-123.apps.googleusercontent.com"

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
	args := m.Called(ctx, token, audience)
	payload, _ := args.Get(0).(*idtoken.Payload)
	return payload, args.Error(1)
}

func TestGoogleVerifier_Success(t *testing.T) {
	v := &mockValidator{}
	v.On("Validate", mock.Anything, "id-token", testAudience).Return(&idtoken.Payload{
		Subject: "1098",
		Claims: map[string]interface{}{
			"email":          "alice@example.com",
			"email_verified": true,
			"name":           "Alice Liddell",
		},
	}, nil)

	identity, err := newGoogleVerifier(v.Validate, time.Second).Verify(context.Background(), "id-token", testAudience)
	require.NoError(t, err)
	assert.Equal(t, &domain.FederatedIdentity{Subject: "1098", Email: "alice@example.com", Name: "Alice Liddell"}, identity)
	v.AssertExpectations(t)
}

func TestGoogleVerifier_NameFallsBackToEmail(t *testing.T) {
	v := &mockValidator{}
	v.On("Validate", mock.Anything, "id-token", testAudience).Return(&idtoken.Payload{
		Claims: map[string]interface{}{"email": "bob@example.com"},
	}, nil)

	identity, err := newGoogleVerifier(v.Validate, time.Second).Verify(context.Background(), "id-token", testAudience)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", identity.Name)
}

func TestGoogleVerifier_Failures(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		audience string
		payload  *idtoken.Payload
		err      error
	}{
		{name: "empty credential", token: " ", audience: testAudience},
		{name: "no audience configured", token: "id-token", audience: ""},
		{name: "rejected by validator", token: "id-token", audience: testAudience, err: errors.New("idtoken: audience provided does not match aud claim")},
		{name: "missing email", token: "id-token", audience: testAudience, payload: &idtoken.Payload{Claims: map[string]interface{}{}}},
		{name: "unverified email", token: "id-token", audience: testAudience, payload: &idtoken.Payload{Claims: map[string]interface{}{
			"email": "eve@example.com", "email_verified": false,
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &mockValidator{}
			v.On("Validate", mock.Anything, tt.token, tt.audience).Return(tt.payload, tt.err).Maybe()

			_, err := newGoogleVerifier(v.Validate, time.Second).Verify(context.Background(), tt.token, tt.audience)
			assert.ErrorIs(t, err, domain.ErrInvalidAssertion)
		})
	}
}

func TestGoogleVerifier_BoundedByTimeout(t *testing.T) {
	slow := func(ctx context.Context, _, _ string) (*idtoken.Payload, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	start := time.Now()
	_, err := newGoogleVerifier(slow, 50*time.Millisecond).Verify(context.Background(), "id-token", testAudience)
	assert.ErrorIs(t, err, domain.ErrInvalidAssertion)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
