package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLog subscribes a structured-log sink for every auth
// event type, producing an audit trail of registrations, logins and
// revocations.
func RegisterAuditLog(d Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		logger.Info("auth event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.String("origin", string(event.Origin)),
			zap.Time("at", event.Timestamp),
		)
		return nil
	}

	for _, t := range []EventType{EventUserRegistered, EventLoginSucceeded, EventTokenRevoked} {
		d.Subscribe(t, handler)
	}
}
