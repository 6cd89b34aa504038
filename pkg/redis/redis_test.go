package redis

import (
	"testing"

	"github.com/shenikar/urban_eye/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	opts := Options(&config.Config{RedisAddr: "cache:6379", RedisPass: "pw", RedisDB: 2, RedisPool: 25})

	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 25, opts.PoolSize)
}

func TestOptions_DefaultPoolSize(t *testing.T) {
	assert.Equal(t, defaultPoolSize, Options(&config.Config{}).PoolSize)
}
