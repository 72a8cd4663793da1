package tokenstore

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// StoreType selects a driver in NewStore.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeFile   StoreType = "file"
	StoreTypeRedis  StoreType = "redis"
)

type storeConfig struct {
	filePath    string
	redisClient redis.UniversalClient
	keyPrefix   string
	ttl         time.Duration
	bufferSize  int
}

// StoreOption configures NewStore.
type StoreOption func(*storeConfig)

// WithFilePath sets the document path for the file driver.
func WithFilePath(path string) StoreOption {
	return func(c *storeConfig) { c.filePath = path }
}

// WithRedisClient sets the client for the redis driver.
func WithRedisClient(client redis.UniversalClient) StoreOption {
	return func(c *storeConfig) { c.redisClient = client }
}

// WithKeyPrefix namespaces redis keys and the change channel.
func WithKeyPrefix(prefix string) StoreOption {
	return func(c *storeConfig) { c.keyPrefix = prefix }
}

// WithTTL expires redis keys after ttl. Zero keeps them until cleared.
func WithTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) { c.ttl = ttl }
}

// WithBufferSize sets the per-subscriber change buffer.
func WithBufferSize(n int) StoreOption {
	return func(c *storeConfig) { c.bufferSize = n }
}
