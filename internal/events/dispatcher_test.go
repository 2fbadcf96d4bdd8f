package events

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/streaming-auth/internal/domain"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var delivered []Event
	d.Subscribe(EventTokenRevoked, func(_ context.Context, event Event) error {
		delivered = append(delivered, event)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventTokenRevoked,
		SubjectID: "user-1",
		Origin:    domain.OriginLocal,
		Timestamp: time.Now(),
		Payload:   TokenRevokedPayload{TokenID: "tok-1"},
	}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if len(delivered) != 1 {
		t.Fatalf("delivered %d events, want 1", len(delivered))
	}
	if delivered[0].ID != "evt-1" {
		t.Errorf("event ID = %q, want evt-1", delivered[0].ID)
	}

	// Events of other types do not reach this subscriber.
	if err := d.Publish(context.Background(), Event{Type: EventLoginSucceeded}); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if len(delivered) != 1 {
		t.Errorf("subscriber received an event of the wrong type")
	}
}

func TestRegisterAuditLog(t *testing.T) {
	d := NewInMemoryDispatcher()
	RegisterAuditLog(d, zap.NewNop())

	// The audit sink must absorb every auth event type without error.
	for _, eventType := range []EventType{EventUserRegistered, EventLoginSucceeded, EventTokenRevoked} {
		if err := d.Publish(context.Background(), Event{Type: eventType}); err != nil {
			t.Fatalf("Publish(%s) error: %v", eventType, err)
		}
	}
}
