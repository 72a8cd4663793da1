package redis

import "errors"

// Connect and Healthcheck wrap the go-redis cause with one of these, so callers
// can tell a bad REDIS_URL apart from a server that never answered.
var (
	ErrEmptyConnectionURL           = errors.New("redis: REDIS_URL is empty")
	ErrUnsupportedScheme            = errors.New("redis: connection URL must use redis:// or rediss://")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection URL")
	ErrRedisNotReady                = errors.New("redis: server did not answer ping before retries ran out")
	ErrHealthcheckFailed            = errors.New("redis: healthcheck ping failed")
)
