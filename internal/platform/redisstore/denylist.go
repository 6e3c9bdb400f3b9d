package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/platform/config"
)

// Connect opens the redis client used for the logout token denylist.
func Connect(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}

// TokenDenylist records logged-out token IDs (jti claims) until the token
// would have expired anyway, so the TTL bounds the set's size.
type TokenDenylist struct {
	rdb *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

func denyKey(jti string) string {
	return "denied_token:" + jti
}

func (d *TokenDenylist) Revoke(ctx context.Context, jti string, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return nil // already expired, nothing to record
	}
	if err := d.rdb.Set(ctx, denyKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoking token %s: %w", jti, err)
	}
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denyKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("checking token %s: %w", jti, err)
	}
	return n > 0, nil
}
