package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

const providerGoogle = "google"

// Session is the outcome of a successful login.
type Session struct {
	Token       string
	ExpiresAt   time.Time
	Username    string
	DisplayName string
}

// AuthService coordinates signup, login, federated login and logout.
type AuthService struct {
	users         repository.UserRepository
	hasher        auth.PasswordHasher
	authenticator *auth.CredentialAuthenticator
	tokens        *auth.TokenService
	verifier      auth.IdentityVerifier
	audience      string
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	now           func() time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     auth.PasswordHasher
	Tokens     *auth.TokenService
	Verifier   auth.IdentityVerifier
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:         deps.UserRepo,
		hasher:        deps.Hasher,
		authenticator: auth.NewCredentialAuthenticator(deps.UserRepo, deps.Hasher),
		tokens:        deps.Tokens,
		verifier:      deps.Verifier,
		audience:      cfg.Google.ClientID,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		now:           time.Now,
	}
}

// Signup creates a USER account. The store is left untouched when the
// username is taken.
func (s *AuthService) Signup(ctx context.Context, username, password, displayName string) error {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         domain.RoleUser,
		CreatedAt:    s.now().UTC(),
	}
	if _, err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, username, nil))
	return nil
}

// Login verifies a password and issues a session token. Unknown users and
// wrong passwords both surface as domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			reason := events.ReasonWrongPassword
			if errors.Is(err, auth.ErrUnknownUsername) {
				reason = events.ReasonUnknownUsername
			}
			s.publish(ctx, events.NewEvent(events.EventLoginFailed, username, events.LoginFailedPayload{Reason: reason}))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventLoginSucceeded, user.Username, nil))
	return session, nil
}

// FederatedLogin verifies a Google ID token, finds or creates the local
// account keyed by email, and issues a session token.
func (s *AuthService) FederatedLogin(ctx context.Context, assertion string) (*Session, error) {
	identity, err := s.verifier.Verify(ctx, assertion, s.audience)
	if err != nil {
		s.publish(ctx, events.NewEvent(events.EventFederatedFailed, "", events.FederatedFailedPayload{
			Provider: providerGoogle,
			Cause:    err.Error(),
		}))
		return nil, domain.ErrInvalidAssertion
	}

	user, created, err := s.findOrCreateFederated(ctx, identity)
	if err != nil {
		return nil, err
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventFederatedLogin, user.Username, events.FederatedLoginPayload{
		Provider: providerGoogle,
		Created:  created,
	}))
	return session, nil
}

// CurrentUser describes the authenticated caller.
func (s *AuthService) CurrentUser(ctx context.Context, principal *domain.Principal) (*domain.UserInfo, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return &domain.UserInfo{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        principal.Role,
	}, nil
}

// Logout revokes the token. It always succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	username, _ := s.tokens.ResolveSubject(token)
	s.tokens.Revoke(token)
	s.publish(ctx, events.NewEvent(events.EventLoggedOut, username, nil))
}

// TokenService exposes the underlying token service for middleware usage.
func (s *AuthService) TokenService() *auth.TokenService {
	return s.tokens
}

func (s *AuthService) findOrCreateFederated(ctx context.Context, identity *domain.FederatedIdentity) (*domain.User, bool, error) {
	user, err := s.users.FindByUsername(ctx, identity.Email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	saved, err := s.users.Save(ctx, &domain.User{
		Username:     identity.Email,
		PasswordHash: domain.FederatedPasswordHash,
		DisplayName:  identity.Name,
		Role:         domain.RoleUser,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		// Lost a race with a concurrent first login for the same email.
		user, err := s.users.FindByUsername(ctx, identity.Email)
		return user, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("create federated user: %w", err)
	}
	return saved, true, nil
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:       token,
		ExpiresAt:   exp,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("auth event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
