package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/streaming-auth/internal/config"
	apperrors "github.com/spec-kit/streaming-auth/pkg/util"
)

const (
	// CookieName matches the header name on purpose: the cookie variant
	// stores base64("Bearer <token>") under the same key the header
	// variant uses.
	CookieName   = "Authorization"
	bearerPrefix = "Bearer "
)

// Transport places issued tokens into responses and extracts them from
// incoming requests. The carrier is a deployment decision, not a
// per-endpoint one; both login paths go through the same instance.
type Transport struct {
	carrier config.TokenCarrier
	ttl     time.Duration
}

// NewTransport builds the adapter for the configured carrier.
func NewTransport(carrier config.TokenCarrier, ttl time.Duration) *Transport {
	return &Transport{carrier: carrier, ttl: ttl}
}

// Carrier exposes the configured carrier strategy.
func (t *Transport) Carrier() config.TokenCarrier {
	return t.carrier
}

// Attach delivers the token on a successful login response. In cookie
// mode an HttpOnly cookie is set; in header mode the token only travels
// in the response body and the client replays it as a bearer header.
func (t *Transport) Attach(c *fiber.Ctx, token string) {
	if t.carrier != config.CarrierCookie {
		return
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(bearerPrefix + token))
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(t.ttl.Seconds()),
		HTTPOnly: true,
		Secure:   false,
	})
}

// Extract pulls the bearer token from the configured carrier.
func (t *Transport) Extract(c *fiber.Ctx) (string, error) {
	if t.carrier == config.CarrierCookie {
		raw := c.Cookies(CookieName)
		if raw == "" {
			return "", apperrors.NewMalformedToken("missing authorization cookie")
		}
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return "", apperrors.NewMalformedToken("invalid authorization cookie")
		}
		return TokenFromHeader(string(decoded))
	}
	return TokenFromHeader(c.Get(fiber.HeaderAuthorization))
}

// TokenFromHeader strips the bearer scheme from an Authorization header
// value.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewMalformedToken("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.NewMalformedToken("invalid authorization header")
	}
	return parts[1], nil
}

// RedirectURL builds the post-login redirect for the delegated path,
// embedding the token and its TTL in seconds as path segments. The
// token is exposed in a URL here; acceptable only because the receiving
// app consumes it immediately over a single-hop redirect.
func RedirectURL(base, token string, ttl time.Duration) string {
	return fmt.Sprintf("%s/oauth-response/%s/%d", strings.TrimRight(base, "/"), token, int(ttl.Seconds()))
}
