package tokenstore

import (
	"context"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

// Key names the persisted entry a Change refers to.
type Key string

const (
	KeyToken    Key = "token"
	KeyIdentity Key = "identity"
)

// Change is the storage-change signal emitted after every write or clear.
type Change struct {
	Key     Key
	Cleared bool
	// Remote is set when the change originated in another process.
	Remote bool
}

// Store persists the bearer token and identity snapshot.
// Implementations must be safe for concurrent use.
type Store interface {
	// Token returns the persisted token or an empty string when none is stored.
	Token(ctx context.Context) (string, error)
	// Identity returns the serialized identity snapshot, nil when none is stored.
	Identity(ctx context.Context) ([]byte, error)
	// Save writes token and identity together.
	Save(ctx context.Context, token string, identity []byte) error
	// SaveIdentity replaces the identity snapshot and keeps the token.
	SaveIdentity(ctx context.Context, identity []byte) error
	// Clear removes token and identity together.
	Clear(ctx context.Context) error
	// Subscribe returns a subscriber receiving every Change until ctx is done.
	Subscribe(ctx context.Context) broadcast.Subscriber[Change]
	Close() error
}

const defaultBufferSize = 16

func notify(ctx context.Context, b *broadcast.MemoryBroadcaster[Change], c Change) {
	// Delivery is best effort; a closed broadcaster just means nobody listens anymore.
	_ = b.Broadcast(context.WithoutCancel(ctx), broadcast.Message[Change]{Data: c})
}
