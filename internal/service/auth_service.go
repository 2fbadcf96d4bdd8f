package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/streaming-auth/internal/auth"
	"github.com/spec-kit/streaming-auth/internal/config"
	"github.com/spec-kit/streaming-auth/internal/domain"
	"github.com/spec-kit/streaming-auth/internal/events"
	"github.com/spec-kit/streaming-auth/internal/observability"
	"github.com/spec-kit/streaming-auth/internal/repository"
	apperrors "github.com/spec-kit/streaming-auth/pkg/util"
)

// AuthService is the gateway both login paths converge on. A token only
// ever moves forward through its lifecycle: issued, active, then either
// expired (detected lazily on verify) or revoked (explicit logout);
// neither terminal state is reversible.
type AuthService struct {
	users       repository.UserRepository
	codec       *auth.TokenCodec
	revocations auth.RevocationStore
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	bcryptCost  int
}

// AuthDependencies encapsulates collaborator requirements for the auth
// service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationStore
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		codec:       auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		revocations: deps.Revocations,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// TokenTTL returns the lifetime applied to issued tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.codec.TTL()
}

// RegisterUser creates a new viewer account after checking the password
// policy.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	if err := auth.CheckPasswordPolicy(password); err != nil {
		return nil, apperrors.NewPolicyViolation(err.Error())
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Origin:       domain.OriginLocal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, domain.OriginLocal,
		events.UserRegisteredPayload{Email: user.Email})
	return user, nil
}

// LoginLocal authenticates a viewer by email and password and issues a
// bearer token.
func (s *AuthService) LoginLocal(ctx context.Context, email, password string) (string, *domain.Token, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.metrics.RecordAuthOutcome("login_local", "invalid_credentials")
			return "", nil, apperrors.NewInvalidCredentials()
		}
		return "", nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.metrics.RecordAuthOutcome("login_local", "invalid_credentials")
		return "", nil, apperrors.NewInvalidCredentials()
	}

	return s.issue(ctx, user.ID, domain.OriginLocal, "login_local")
}

// LoginDelegated issues a token for an identity the external provider
// already established. No password is involved; the resulting token has
// the same shape and TTL as a local one, so verification downstream is
// path-agnostic. First-time delegated users get a credential-less
// account record.
func (s *AuthService) LoginDelegated(ctx context.Context, identity *auth.ExternalIdentity) (string, *domain.Token, error) {
	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", nil, err
		}
		user = &domain.User{
			Name:   identity.Name,
			Email:  identity.Email,
			Origin: domain.OriginDelegated,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return "", nil, err
		}
		s.publish(ctx, events.EventUserRegistered, user.ID, domain.OriginDelegated,
			events.UserRegisteredPayload{Email: user.Email})
	}

	return s.issue(ctx, user.ID, domain.OriginDelegated, "login_delegated")
}

// Verify resolves a raw token into a principal, rejecting it as
// malformed, expired or revoked, in that order.
func (s *AuthService) Verify(ctx context.Context, tokenString string, now time.Time) (domain.Principal, error) {
	claims, err := s.codec.Parse(tokenString)
	if err != nil {
		s.metrics.RecordAuthOutcome("verify", "malformed")
		return nil, apperrors.NewMalformedToken("invalid token")
	}
	if claims.ExpiredAt(now) {
		s.metrics.RecordAuthOutcome("verify", "expired")
		return nil, apperrors.NewTokenExpired()
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID, now)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if revoked {
		s.metrics.RecordAuthOutcome("verify", "revoked")
		return nil, apperrors.NewTokenRevoked()
	}

	s.metrics.RecordAuthOutcome("verify", "ok")
	return domain.NewPrincipal(claims.Subject, claims.Origin), nil
}

// Logout revokes the token carried in the Authorization header value.
// The revocation entry expires together with the token itself, so the
// denylist never outlives the credential it blocks.
func (s *AuthService) Logout(ctx context.Context, authHeader string) error {
	tokenString, err := auth.TokenFromHeader(authHeader)
	if err != nil {
		return err
	}

	claims, err := s.codec.Parse(tokenString)
	if err != nil {
		return apperrors.NewMalformedToken("invalid token")
	}

	fresh, err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !fresh {
		s.metrics.RecordAuthOutcome("logout", "already_revoked")
		return apperrors.NewAlreadyRevoked()
	}

	s.metrics.RecordAuthOutcome("logout", "ok")
	s.publish(ctx, events.EventTokenRevoked, claims.Subject, claims.Origin,
		events.TokenRevokedPayload{TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time})
	return nil
}

func (s *AuthService) issue(ctx context.Context, subject string, origin domain.AuthOrigin, operation string) (string, *domain.Token, error) {
	tokenString, token, err := s.codec.Issue(subject, origin)
	if err != nil {
		return "", nil, err
	}

	s.metrics.RecordAuthOutcome(operation, "ok")
	s.publish(ctx, events.EventLoginSucceeded, subject, origin,
		events.LoginSucceededPayload{TokenID: token.ID, ExpiresAt: token.ExpiresAt})
	return tokenString, token, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, origin domain.AuthOrigin, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Origin:    origin,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
