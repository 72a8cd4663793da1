package tokenstore

import (
	"bytes"
	"context"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

// MemoryStore keeps the credentials in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	token    string
	identity []byte
	closed   bool
	changes  *broadcast.MemoryBroadcaster[Change]
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(bufferSize int) *MemoryStore {
	return &MemoryStore{
		changes: broadcast.NewMemoryBroadcaster[Change](bufferSize),
	}
}

// Token implements Store.
func (s *MemoryStore) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", ErrStoreClosed
	}
	return s.token, nil
}

// Identity implements Store.
func (s *MemoryStore) Identity(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	return bytes.Clone(s.identity), nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, token string, identity []byte) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	s.token = token
	s.identity = bytes.Clone(identity)
	s.mu.Unlock()

	notify(ctx, s.changes, Change{Key: KeyToken})
	return nil
}

// SaveIdentity implements Store.
func (s *MemoryStore) SaveIdentity(ctx context.Context, identity []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	s.identity = bytes.Clone(identity)
	s.mu.Unlock()

	notify(ctx, s.changes, Change{Key: KeyIdentity})
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	notify(ctx, s.changes, Change{Key: KeyToken, Cleared: true})
	return nil
}

// Subscribe implements Store.
func (s *MemoryStore) Subscribe(ctx context.Context) broadcast.Subscriber[Change] {
	return s.changes.Subscribe(ctx)
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.token = ""
	s.identity = nil
	s.mu.Unlock()
	return s.changes.Close()
}
