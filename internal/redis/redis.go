package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func InitRedis(ctx context.Context, redisAddress string, redisUsername string, redisPassword string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", redisAddress, err)
	}
	log.Info().Str("addr", redisAddress).Msg("connected to redis")
	return rdb, nil
}

// DigestCache remembers the last published digest of each year so unchanged
// regenerations do not notify screens again.
type DigestCache struct {
	client *redis.Client
	prefix string
}

func NewDigestCache(client *redis.Client) *DigestCache {
	return &DigestCache{client: client, prefix: "athan:digest:"}
}

func (c *DigestCache) key(year int) string {
	return fmt.Sprintf("%s%d", c.prefix, year)
}

// LastDigest returns "" when nothing was published for year yet.
func (c *DigestCache) LastDigest(ctx context.Context, year int) (string, error) {
	v, err := c.client.Get(ctx, c.key(year)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read digest for %d: %w", year, err)
	}
	return v, nil
}

func (c *DigestCache) RememberDigest(ctx context.Context, year int, digest string) error {
	if err := c.client.Set(ctx, c.key(year), digest, 0).Err(); err != nil {
		return fmt.Errorf("store digest for %d: %w", year, err)
	}
	return nil
}
