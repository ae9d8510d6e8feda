// Package redis keeps the token blacklist in Redis.
//
// Each revoked jti is a key with a TTL equal to the remaining lifetime of
// the token, so expired entries disappear without a janitor.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/iudanet/coffeecloud/internal/config"
	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
)

var _ storage.TokenBlacklist = (*Blacklist)(nil)

// Blacklist implements storage.TokenBlacklist on top of Redis
type Blacklist struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

// NewClient creates a Redis client from configuration
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// New connects to Redis and checks the connection
func New(ctx context.Context, cfg config.RedisConfig) (*Blacklist, error) {
	client := NewClient(cfg)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	return NewWithClient(client, cfg.KeyPrefix), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *goredis.Client, prefix string) *Blacklist {
	return &Blacklist{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// RevokeToken stores jti until the token would expire on its own
func (b *Blacklist) RevokeToken(ctx context.Context, token *models.RevokedToken) error {
	ttl := token.ExpiresAt.Sub(b.now())
	if ttl <= 0 {
		// токен уже истек и будет отклонен проверкой подписи
		return nil
	}

	if err := b.client.Set(ctx, b.key(token.JTI), string(token.Type), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsTokenRevoked reports whether jti is present
func (b *Blacklist) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return n > 0, nil
}

// DeleteExpiredTokens is a no-op: Redis expires keys itself
func (b *Blacklist) DeleteExpiredTokens(context.Context, time.Time) (int, error) {
	return 0, nil
}

// Ping checks the Redis connection
func (b *Blacklist) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (b *Blacklist) Close() error {
	return b.client.Close()
}

func (b *Blacklist) key(jti string) string {
	return b.prefix + jti
}
