package domain

import "time"

// AuthOrigin tags how a principal proved its identity.
type AuthOrigin string

const (
	OriginLocal     AuthOrigin = "local"
	OriginDelegated AuthOrigin = "delegated"
)

// Principal is the authenticated caller as seen by downstream handlers.
// Both login paths converge on this contract; callers never need the
// concrete variant.
type Principal interface {
	Subject() string
	Origin() AuthOrigin
}

// LocalPrincipal is a caller authenticated with email and password.
type LocalPrincipal struct {
	UserID string
}

func (p LocalPrincipal) Subject() string    { return p.UserID }
func (p LocalPrincipal) Origin() AuthOrigin { return OriginLocal }

// DelegatedPrincipal is a caller authenticated by an external identity
// provider.
type DelegatedPrincipal struct {
	UserID   string
	Provider string
}

func (p DelegatedPrincipal) Subject() string    { return p.UserID }
func (p DelegatedPrincipal) Origin() AuthOrigin { return OriginDelegated }

// NewPrincipal builds the variant matching the origin tag carried in a
// token.
func NewPrincipal(subject string, origin AuthOrigin) Principal {
	if origin == OriginDelegated {
		return DelegatedPrincipal{UserID: subject}
	}
	return LocalPrincipal{UserID: subject}
}

// Token records metadata about an issued bearer token. The string form
// is opaque to everything except the codec.
type Token struct {
	ID        string
	SubjectID string
	Origin    AuthOrigin
	IssuedAt  time.Time
	ExpiresAt time.Time
}
