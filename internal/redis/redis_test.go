package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestCacheKey(t *testing.T) {
	c := NewDigestCache(nil)
	assert.Equal(t, "athan:digest:2024", c.key(2024))
}

func TestInitRedisUnreachable(t *testing.T) {
	// port 1 is reserved and refuses connections
	_, err := InitRedis(context.Background(), "127.0.0.1:1", "", "")
	assert.Error(t, err)
}
