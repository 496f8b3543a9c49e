package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventLoginSucceeded  EventType = "login_succeeded"
	EventLoginFailed     EventType = "login_failed"
	EventFederatedLogin  EventType = "federated_login"
	EventFederatedFailed EventType = "federated_login_failed"
	EventLoggedOut       EventType = "logged_out"
)

// LoginFailureReason distinguishes failed password logins in server logs.
type LoginFailureReason string

const (
	ReasonUnknownUsername LoginFailureReason = "unknown_username"
	ReasonWrongPassword   LoginFailureReason = "wrong_password"
)

// Event represents an authentication event emitted by the gateway.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Username  string      `json:"username,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, username string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Username:  username,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason LoginFailureReason `json:"reason"`
}

// FederatedLoginPayload payload.
type FederatedLoginPayload struct {
	Provider string `json:"provider"`
	Created  bool   `json:"created"`
}

// FederatedFailedPayload payload. Cause is never sent to clients.
type FederatedFailedPayload struct {
	Provider string `json:"provider"`
	Cause    string `json:"cause"`
}
