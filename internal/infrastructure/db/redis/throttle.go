package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	attemptWindow      = 15 * time.Minute
)

// LoginThrottle counts failed login attempts per account in Redis.
// Key format: login_attempts:<email>, expiring after attemptWindow.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
}

// NewLoginThrottle creates a throttle allowing maxAttempts failures per
// window. maxAttempts <= 0 selects the default.
func NewLoginThrottle(client *redis.Client, maxAttempts int) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts}
}

// Exceeded reports whether the account has used up its attempt budget.
func (t *LoginThrottle) Exceeded(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxAttempts, nil
}

// RecordFailure counts one failed attempt. The window starts at the first
// failure and is not extended by later ones.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	key := t.key(email)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, attemptWindow).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}
