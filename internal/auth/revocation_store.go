package auth

import (
	"context"
	"time"

	"menuhub/internal/cache"
)

const revokedSessionKeyPrefix = "revoked_session:"

// RevocationStore defines storage for logged-out session tokens.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RedisRevocationStore keeps revoked token ids in Redis until the token would have expired.
type RedisRevocationStore struct {
	cache *cache.Client
}

// Ensure RedisRevocationStore implements RevocationStore
var _ RevocationStore = (*RedisRevocationStore)(nil)

// NewRevocationStore creates a new revocation store.
func NewRevocationStore(cache *cache.Client) *RedisRevocationStore {
	return &RedisRevocationStore{cache: cache}
}

// Revoke marks tokenID as logged out for ttl.
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedSessionKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks if a token id was logged out. Unreachable redis counts as not revoked.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) bool {
	return s.cache.Exists(ctx, revokedSessionKeyPrefix+tokenID)
}
