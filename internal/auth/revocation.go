package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RevocationStore tracks token IDs invalidated before their natural
// expiry. An entry only needs to live as long as the token it shadows:
// once the token's own expiry passes, the codec-level check rejects it
// anyway, so implementations may drop the entry at any point after
// that.
type RevocationStore interface {
	// Revoke marks the token ID as revoked until expiresAt. The
	// returned bool is true for a first revocation and false when the
	// ID was already revoked, so duplicate logouts can be reported
	// distinctly.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error)

	// IsRevoked reports whether the token ID is revoked at the given
	// instant. Entries past their expiry count as absent.
	IsRevoked(ctx context.Context, tokenID string, now time.Time) (bool, error)
}

// MemoryRevocationStore is a mutex-guarded in-process denylist. State
// does not survive restarts: a restart forgives revocations still
// within TTL, which is an accepted tradeoff for this backend.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryRevocationStore creates an empty store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{entries: make(map[string]time.Time)}
}

// Revoke records the token ID. Re-revoking an ID whose entry already
// expired counts as a first revocation again.
func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) (bool, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if exp, ok := s.entries[tokenID]; ok && now.Before(exp) {
		return false, nil
	}
	s.entries[tokenID] = expiresAt
	return true, nil
}

// IsRevoked checks membership with lazy expiry: correctness never
// depends on the background sweep having run.
func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string, now time.Time) (bool, error) {
	s.mu.RLock()
	exp, ok := s.entries[tokenID]
	s.mu.RUnlock()
	return ok && now.Before(exp), nil
}

// Sweep removes entries whose token expiry has passed and returns the
// number removed.
func (s *MemoryRevocationStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the current number of entries.
func (s *MemoryRevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartSweeper runs a periodic Sweep until ctx is cancelled. The sweep
// is an optimization only; skipping it never affects lookups.
func (s *MemoryRevocationStore) StartSweeper(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := s.Sweep(now); removed > 0 {
					logger.Debug("swept revocation entries", zap.Int("removed", removed))
				}
			}
		}
	}()
}
