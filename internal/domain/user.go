package domain

import "time"

// User is the domain model for viewers of the streaming platform.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Origin       AuthOrigin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
