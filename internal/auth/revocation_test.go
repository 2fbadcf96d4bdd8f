package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryRevocationStoreRevoke(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()
	now := time.Now()
	expiresAt := now.Add(time.Hour)

	revoked, err := store.IsRevoked(ctx, "token-1", now)
	if err != nil {
		t.Fatalf("IsRevoked() error: %v", err)
	}
	if revoked {
		t.Fatal("fresh store reported a token revoked")
	}

	fresh, err := store.Revoke(ctx, "token-1", expiresAt)
	if err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}
	if !fresh {
		t.Fatal("first Revoke() not reported as fresh")
	}

	revoked, _ = store.IsRevoked(ctx, "token-1", now)
	if !revoked {
		t.Fatal("revoked token not reported revoked")
	}

	// A duplicate revocation is a state no-op but must be visible to
	// the caller.
	fresh, err = store.Revoke(ctx, "token-1", expiresAt)
	if err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}
	if fresh {
		t.Error("duplicate Revoke() reported as fresh")
	}
}

func TestMemoryRevocationStoreLazyExpiry(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()
	now := time.Now()
	expiresAt := now.Add(time.Hour)

	if _, err := store.Revoke(ctx, "token-1", expiresAt); err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}

	revoked, _ := store.IsRevoked(ctx, "token-1", expiresAt.Add(-time.Minute))
	if !revoked {
		t.Error("entry not visible before its expiry")
	}

	// Past expiry the entry counts as absent even though no sweep ran.
	revoked, _ = store.IsRevoked(ctx, "token-1", expiresAt)
	if revoked {
		t.Error("entry still visible at its expiry instant")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d before sweep, want 1", store.Len())
	}

	if removed := store.Sweep(expiresAt); removed != 1 {
		t.Errorf("Sweep() removed %d entries, want 1", removed)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d after sweep, want 0", store.Len())
	}
}

func TestMemoryRevocationStoreReRevokeAfterExpiry(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()
	past := time.Now().Add(-time.Minute)

	if _, err := store.Revoke(ctx, "token-1", past); err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}

	// The stale entry no longer shadows anything, so revoking the same
	// ID again counts as a first revocation.
	fresh, err := store.Revoke(ctx, "token-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}
	if !fresh {
		t.Error("revocation after entry expiry not reported as fresh")
	}
}

func TestMemoryRevocationStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		id := fmt.Sprintf("token-%d", i)
		go func() {
			defer wg.Done()
			if _, err := store.Revoke(ctx, id, expiresAt); err != nil {
				t.Errorf("Revoke(%s) error: %v", id, err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := store.IsRevoked(ctx, id, time.Now()); err != nil {
				t.Errorf("IsRevoked(%s) error: %v", id, err)
			}
		}()
	}
	wg.Wait()

	now := time.Now()
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("token-%d", i)
		revoked, _ := store.IsRevoked(ctx, id, now)
		if !revoked {
			t.Errorf("token %s lost after concurrent revoke", id)
		}
	}
}
