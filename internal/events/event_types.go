package events

import (
	"time"

	"github.com/spec-kit/streaming-auth/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventLoginSucceeded EventType = "login_succeeded"
	EventTokenRevoked   EventType = "token_revoked"
)

// Event represents an auth audit event emitted by services.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	SubjectID string            `json:"subject_id"`
	Origin    domain.AuthOrigin `json:"origin"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   interface{}       `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenRevokedPayload payload.
type TokenRevokedPayload struct {
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
