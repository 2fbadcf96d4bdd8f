package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/streaming-auth/internal/auth"
	"github.com/spec-kit/streaming-auth/internal/service"
)

const stateCookie = "oauth_state"

// OAuthHandler drives the delegated login flow: redirect out to the
// identity provider, then turn the callback into a first-class bearer
// token.
type OAuthHandler struct {
	auth         *service.AuthService
	client       *auth.OAuthClient
	redirectBase string
	logger       *zap.Logger
}

// NewOAuthHandler constructs handler.
func NewOAuthHandler(authService *service.AuthService, client *auth.OAuthClient, redirectBase string, logger *zap.Logger) *OAuthHandler {
	return &OAuthHandler{auth: authService, client: client, redirectBase: redirectBase, logger: logger}
}

// Login handles GET /api/v1/oauth/login: sends the browser to the
// provider with a random state bound to a short-lived cookie.
func (h *OAuthHandler) Login(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HTTPOnly: true,
	})
	return c.Redirect(h.client.AuthCodeURL(state), http.StatusFound)
}

// Callback handles GET /api/v1/oauth/callback: validates state,
// resolves the provider identity, issues a token and redirects the
// browser to the downstream app with token and TTL as path segments.
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookie) {
		return fiber.NewError(http.StatusBadRequest, "invalid oauth state")
	}

	code := c.Query("code")
	if code == "" {
		return fiber.NewError(http.StatusBadRequest, "missing authorization code")
	}

	identity, err := h.client.FetchIdentity(c.UserContext(), code)
	if err != nil {
		h.logger.Warn("oauth identity fetch failed", zap.Error(err))
		return fiber.NewError(http.StatusUnauthorized, "identity provider rejected the login")
	}

	tokenString, _, err := h.auth.LoginDelegated(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.Redirect(auth.RedirectURL(h.redirectBase, tokenString, h.auth.TokenTTL()), http.StatusFound)
}
