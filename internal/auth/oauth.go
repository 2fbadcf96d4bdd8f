package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/spec-kit/streaming-auth/internal/config"
)

// ExternalIdentity is the principal the identity provider vouches for.
type ExternalIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OAuthClient drives the authorization-code handshake with the
// configured identity provider. The handshake itself is the provider's
// problem; this client only turns a callback code into an
// ExternalIdentity.
type OAuthClient struct {
	conf        *oauth2.Config
	userInfoURL string
}

// NewOAuthClient builds the client from provider settings.
func NewOAuthClient(cfg config.OAuthConfig) *OAuthClient {
	return &OAuthClient{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

// AuthCodeURL returns the provider URL that starts the flow.
func (o *OAuthClient) AuthCodeURL(state string) string {
	return o.conf.AuthCodeURL(state)
}

// FetchIdentity exchanges the callback code and resolves the user info
// endpoint into an ExternalIdentity.
func (o *OAuthClient) FetchIdentity(ctx context.Context, code string) (*ExternalIdentity, error) {
	token, err := o.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	resp, err := o.conf.Client(ctx, token).Get(o.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info endpoint returned %d", resp.StatusCode)
	}

	var identity ExternalIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("user info missing email")
	}
	return &identity, nil
}
