package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

const defaultKeyPrefix = "storefront:"

// changeEnvelope travels over the redis change channel.
type changeEnvelope struct {
	Key     Key    `json:"key"`
	Cleared bool   `json:"cleared"`
	Origin  string `json:"origin"`
}

// RedisStore shares credentials between processes through redis.
// Writes publish on "<prefix>changes"; publications from other instances are
// relayed to local subscribers with Change.Remote set.
type RedisStore struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	origin  string
	changes *broadcast.MemoryBroadcaster[Change]

	mu     sync.Mutex
	pubsub *redis.PubSub
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// NewRedisStore creates a redis-backed store and starts relaying remote changes.
// It waits for the change subscription to be confirmed before returning.
// The client is owned by the caller and is not closed by Close.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration, bufferSize int) (*RedisStore, error) {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &RedisStore{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		origin:  uuid.NewString(),
		changes: broadcast.NewMemoryBroadcaster[Change](bufferSize),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.pubsub = client.Subscribe(ctx, s.channel())
	if _, err := s.pubsub.Receive(ctx); err != nil {
		cancel()
		_ = s.pubsub.Close()
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	go s.relay(ctx)

	return s, nil
}

// Token implements Store.
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key(KeyToken)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(ErrReadStore, err)
	}
	return token, nil
}

// Identity implements Store.
func (s *RedisStore) Identity(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(KeyIdentity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrReadStore, err)
	}
	return data, nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, token string, identity []byte) error {
	if token == "" {
		return ErrEmptyToken
	}

	change := Change{Key: KeyToken}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(KeyToken), token, s.ttl)
		if len(identity) > 0 {
			pipe.Set(ctx, s.key(KeyIdentity), identity, s.ttl)
		} else {
			pipe.Del(ctx, s.key(KeyIdentity))
		}
		return s.publish(ctx, pipe, change)
	})
	if err != nil {
		return errors.Join(ErrWriteStore, err)
	}

	notify(ctx, s.changes, change)
	return nil
}

// SaveIdentity implements Store.
func (s *RedisStore) SaveIdentity(ctx context.Context, identity []byte) error {
	change := Change{Key: KeyIdentity}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(KeyIdentity), identity, s.ttl)
		return s.publish(ctx, pipe, change)
	})
	if err != nil {
		return errors.Join(ErrWriteStore, err)
	}

	notify(ctx, s.changes, change)
	return nil
}

// Clear implements Store.
func (s *RedisStore) Clear(ctx context.Context) error {
	change := Change{Key: KeyToken, Cleared: true}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(KeyToken), s.key(KeyIdentity))
		return s.publish(ctx, pipe, change)
	})
	if err != nil {
		return errors.Join(ErrWriteStore, err)
	}

	notify(ctx, s.changes, change)
	return nil
}

// Subscribe implements Store.
func (s *RedisStore) Subscribe(ctx context.Context) broadcast.Subscriber[Change] {
	return s.changes.Subscribe(ctx)
}

// Close stops relaying remote changes and closes local subscribers.
func (s *RedisStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	err := s.pubsub.Close()
	<-s.done
	return errors.Join(err, s.changes.Close())
}

func (s *RedisStore) relay(ctx context.Context) {
	defer close(s.done)

	for msg := range s.pubsub.Channel() {
		var env changeEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			continue
		}
		if env.Origin == s.origin {
			continue
		}
		notify(ctx, s.changes, Change{Key: env.Key, Cleared: env.Cleared, Remote: true})
	}
}

func (s *RedisStore) publish(ctx context.Context, pipe redis.Pipeliner, c Change) error {
	payload, err := json.Marshal(changeEnvelope{Key: c.Key, Cleared: c.Cleared, Origin: s.origin})
	if err != nil {
		return err
	}
	pipe.Publish(ctx, s.channel(), payload)
	return nil
}

func (s *RedisStore) key(k Key) string {
	return s.prefix + string(k)
}

func (s *RedisStore) channel() string {
	return s.prefix + "changes"
}
