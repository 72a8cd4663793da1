// Package redis opens a go-redis client from a connection URL and verifies it
// answers before returning.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		RetryAttempts: 3,
//		RetryInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Only redis:// and rediss:// URLs are accepted (ErrUnsupportedScheme). Connect pings with
// exponential backoff (sethvargo/go-retry) until the server answers, the
// attempts run out or ConnectTimeout elapses; the returned error then wraps
// ErrRedisNotReady. Healthcheck returns a ping function suitable for probes.
//
// Config carries env tags (REDIS_URL, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL,
// REDIS_CONNECT_TIMEOUT) for use with core/config.
package redis
