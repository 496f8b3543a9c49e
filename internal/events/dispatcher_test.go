package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryDispatcher(t *testing.T) {
	d := NewInMemoryDispatcher()
	ctx := context.Background()

	var got []string
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.Username)
		return errors.New("boom")
	})
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.Username)
		return nil
	})
	d.Subscribe(EventLoggedOut, func(context.Context, Event) error {
		got = append(got, "logout")
		return nil
	})

	err := d.Publish(ctx, NewEvent(EventLoginSucceeded, "alice", nil))
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first:alice", "second:alice"}, got)

	assert.NoError(t, d.Publish(ctx, NewEvent(EventUserRegistered, "bob", nil)))
	assert.Len(t, got, 2)
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventLoginFailed, "alice", LoginFailedPayload{Reason: ReasonWrongPassword})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventLoginFailed, e.Type)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, ReasonWrongPassword, e.Payload.(LoginFailedPayload).Reason)
}
