package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/streaming-auth/internal/domain"
	apperrors "github.com/spec-kit/streaming-auth/pkg/util"
)

const principalKey = "auth_principal"

// Verifier resolves a raw token into a principal. Implemented by the
// auth service; declared here so the middleware carries no service
// dependency.
type Verifier interface {
	Verify(ctx context.Context, tokenString string, now time.Time) (domain.Principal, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	verifier  Verifier
	transport *Transport
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(verifier Verifier, transport *Transport) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, transport: transport}
}

// Handle enforces authentication for protected routes. Expired and
// revoked tokens keep their specific error codes; anything structurally
// wrong collapses to a generic unauthorized.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw, err := m.transport.Extract(c)
	if err != nil {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	principal, err := m.verifier.Verify(c.UserContext(), raw, time.Now())
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			switch domainErr.Code {
			case "TOKEN_EXPIRED", "TOKEN_REVOKED":
				return err
			}
		}
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}
