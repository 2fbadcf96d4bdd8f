package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/streaming-auth/internal/auth"
)

const revocationKeyPrefix = "auth:revoked:"

// RedisRevocationStore keeps revoked token IDs in Redis with a TTL
// equal to the token's remaining lifetime, so the denylist trims itself
// and survives process restarts.
type RedisRevocationStore struct {
	client *redis.Client
}

var _ auth.RevocationStore = (*RedisRevocationStore)(nil)

// NewRedisRevocationStore builds the store on an existing connection.
func NewRedisRevocationStore(r *Redis) *RedisRevocationStore {
	return &RedisRevocationStore{client: r.Client}
}

// Revoke marks the token ID via SETNX; the boolean result distinguishes
// a first revocation from a duplicate. Tokens already past expiry need
// no entry at all.
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return true, nil
	}
	return s.client.SetNX(ctx, revocationKeyPrefix+tokenID, "1", ttl).Result()
}

// IsRevoked checks membership; expiry is handled by the key TTL.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string, _ time.Time) (bool, error) {
	n, err := s.client.Exists(ctx, revocationKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
