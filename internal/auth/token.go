package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/streaming-auth/internal/domain"
)

// Parse failure classes. Expiry is deliberately not a parse failure:
// the codec hands back the claims and the caller compares against its
// own clock, so an expired token stays distinguishable from a corrupt
// one.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
)

// TokenCodec issues and parses signed bearer tokens. The signing key is
// process-wide; rotating it invalidates every outstanding token.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec with the given signing key and token
// lifetime.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload.
type Claims struct {
	Origin domain.AuthOrigin `json:"origin"`
	jwt.RegisteredClaims
}

// ExpiredAt reports whether the token is past its expiry at the given
// instant.
func (c *Claims) ExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !now.Before(c.ExpiresAt.Time)
}

// TTL returns the configured token lifetime.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Issue builds and signs a token for the subject. Every token carries a
// random jti, so rapid repeated logins for the same subject yield
// distinct, independently revocable tokens.
func (tc *TokenCodec) Issue(subject string, origin domain.AuthOrigin) (string, *domain.Token, error) {
	now := time.Now()
	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		Origin: origin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
	if err != nil {
		return "", nil, err
	}

	return signed, &domain.Token{
		ID:        claims.ID,
		SubjectID: subject,
		Origin:    origin,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse checks structure and signature and returns the claims. Claim
// validation (expiry) is skipped here so the caller owns the clock.
func (tc *TokenCodec) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenSignature
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.ID == "" || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
