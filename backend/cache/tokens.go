package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const verificationTTL = 24 * time.Hour

// TokenCache holds short-lived email verification tokens.
type TokenCache struct {
	store Store
}

func NewTokenCache(store Store) *TokenCache {
	return &TokenCache{store: store}
}

// CreateVerificationToken issues a new token for the user and stores it for 24h.
func (c *TokenCache) CreateVerificationToken(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	err := c.store.Set(ctx, "verify_email:"+token, strconv.FormatUint(uint64(userID), 10), verificationTTL)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeVerificationToken resolves and deletes a token, returning its user.
func (c *TokenCache) ConsumeVerificationToken(ctx context.Context, token string) (uint, error) {
	val, err := c.store.Get(ctx, "verify_email:"+token)
	if err != nil {
		return 0, err
	}
	_ = c.store.Del(ctx, "verify_email:"+token)

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
