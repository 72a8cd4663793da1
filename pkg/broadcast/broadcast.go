package broadcast

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrBroadcasterClosed = errors.New("broadcaster is closed")
	ErrSubscriberClosed  = errors.New("subscriber is closed")
)

// Message wraps a broadcast payload.
type Message[T any] struct {
	Data T
}

// Broadcaster sends messages to every active subscriber.
type Broadcaster[T any] interface {
	Subscribe(ctx context.Context) Subscriber[T]
	Broadcast(ctx context.Context, msg Message[T]) error
	Close() error
}

// Subscriber receives broadcast messages until it is closed or its context ends.
type Subscriber[T any] interface {
	Receive() <-chan Message[T]
	Close() error
}

// MemoryBroadcaster is an in-process Broadcaster. Delivery never blocks: when a
// subscriber's buffer is full the message is dropped for that subscriber only.
type MemoryBroadcaster[T any] struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]*memorySubscriber[T]
	buffer int
	closed bool
}

// NewMemoryBroadcaster creates a broadcaster with the given per-subscriber buffer.
func NewMemoryBroadcaster[T any](buffer int) *MemoryBroadcaster[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &MemoryBroadcaster[T]{
		subs:   make(map[uuid.UUID]*memorySubscriber[T]),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. It is removed when ctx is done or Close is called.
// Subscribing to a closed broadcaster yields a subscriber whose channel is already closed.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	sub := &memorySubscriber[T]{
		id:     uuid.New(),
		ch:     make(chan Message[T], b.buffer),
		done:   make(chan struct{}),
		parent: b,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.shutdown()
		return sub
	}
	b.subs[sub.id] = sub
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.remove(sub.id)
		case <-sub.done:
		}
	}()

	return sub
}

// Broadcast delivers msg to all current subscribers.
func (b *MemoryBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBroadcasterClosed
	}

	for _, sub := range b.subs {
		select {
		case sub.ch <- msg:
		default:
		}
	}
	return nil
}

// Subscribers returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close removes all subscribers. Further broadcasts return ErrBroadcasterClosed.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		sub.shutdown()
	}
	return nil
}

func (b *MemoryBroadcaster[T]) remove(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		sub.shutdown()
	}
}

type memorySubscriber[T any] struct {
	id     uuid.UUID
	ch     chan Message[T]
	done   chan struct{}
	once   sync.Once
	parent *MemoryBroadcaster[T]
}

func (s *memorySubscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

func (s *memorySubscriber[T]) Close() error {
	s.parent.remove(s.id)
	return nil
}

// shutdown must be called with the parent lock held (or before registration).
func (s *memorySubscriber[T]) shutdown() {
	s.once.Do(func() {
		close(s.done)
		close(s.ch)
	})
}
