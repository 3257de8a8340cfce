// Package memory provides in-process implementations of repository
// interfaces, used in tests and wherever a durable store is not required.
package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationRepository is a mutex-guarded set of revoked token IDs. It holds
// each entry until the token's own expiry, pruning stale entries on write.
type RevocationRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewRevocationRepository() *RevocationRepository {
	return &RevocationRepository{
		revoked: make(map[string]time.Time),
	}
}

func (r *RevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, exp := range r.revoked {
		if exp.Before(now) {
			delete(r.revoked, id)
		}
	}

	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.revoked[tokenID]
	return ok, nil
}
