package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const revokedTokenPrefix = "auth:revoked:"

// TokenStore keeps revoked access tokens in Redis until their natural
// expiry. Tokens are stored hashed so the raw credential never lands in
// the cache.
type TokenStore struct {
	client *Client
}

// NewTokenStore creates a TokenStore over the given Redis client
func NewTokenStore(client *Client) *TokenStore {
	return &TokenStore{client: client}
}

func revokedTokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedTokenPrefix + hex.EncodeToString(sum[:])
}

// Revoke marks a token as logged out for the remainder of its lifetime
func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, revokedTokenKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token has been logged out
func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedTokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
