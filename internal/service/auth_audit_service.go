package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/events"
)

// AuthAuditService logs authentication events. Failure reasons only ever
// reach these logs, never client responses.
type AuthAuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuthAuditService creates the service.
func NewAuthAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuthAuditService {
	return &AuthAuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("auth_audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuthAuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLoginSucceeded)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventFederatedLogin, a.handleFederatedLogin)
	a.dispatcher.Subscribe(events.EventFederatedFailed, a.handleFederatedFailed)
	a.dispatcher.Subscribe(events.EventLoggedOut, a.handleLoggedOut)
}

func (a *AuthAuditService) handleUserRegistered(_ context.Context, event events.Event) error {
	a.logger.Info("user registered", zap.String("username", event.Username), zap.Time("at", event.Timestamp))
	return nil
}

func (a *AuthAuditService) handleLoginSucceeded(_ context.Context, event events.Event) error {
	a.logger.Info("login succeeded", zap.String("username", event.Username), zap.Time("at", event.Timestamp))
	return nil
}

func (a *AuthAuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	reason := "unknown"
	if p, ok := event.Payload.(events.LoginFailedPayload); ok {
		reason = string(p.Reason)
	}
	a.logger.Warn("failed login attempt", zap.String("reason", reason))
	return nil
}

func (a *AuthAuditService) handleFederatedLogin(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("username", event.Username), zap.Time("at", event.Timestamp)}
	if p, ok := event.Payload.(events.FederatedLoginPayload); ok {
		fields = append(fields, zap.String("provider", p.Provider), zap.Bool("created", p.Created))
	}
	a.logger.Info("federated login succeeded", fields...)
	return nil
}

func (a *AuthAuditService) handleFederatedFailed(_ context.Context, event events.Event) error {
	fields := []zap.Field{}
	if p, ok := event.Payload.(events.FederatedFailedPayload); ok {
		fields = append(fields, zap.String("provider", p.Provider), zap.String("cause", p.Cause))
	}
	a.logger.Warn("federated login rejected", fields...)
	return nil
}

func (a *AuthAuditService) handleLoggedOut(_ context.Context, event events.Event) error {
	a.logger.Info("logged out", zap.String("username", event.Username))
	return nil
}
