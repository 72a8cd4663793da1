package cart

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/storefront/core/apiclient"
	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/tokenstore"
	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

const (
	cartPath   = "/cart"
	addPath    = "/cart/add"
	updatePath = "/cart/update/%d"
	removePath = "/cart/remove/%d"
	clearPath  = "/cart/clear"
)

// Store caches the server-side cart of the signed-in user.
// Every mutation is sent to the API and followed by a full re-fetch; the local
// copy is never patched. Concurrent mutations are not serialized and the last
// fetch to complete wins.
type Store struct {
	client *apiclient.Client
	tokens tokenstore.Store
	logger *slog.Logger

	mu      sync.RWMutex
	items   []Item
	summary Summary
	state   State
	loading bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty cart store bound to client.
func New(client *apiclient.Client, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	s := &Store{
		client:  client,
		tokens:  client.Store(),
		logger:  slog.Default(),
		summary: Summary{},
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Fetch replaces the cached items with the server snapshot. Without a token the
// cart is reset locally and no request is made. A 401 also resets the cart; other
// failures keep the last snapshot and are returned.
func (s *Store) Fetch(ctx context.Context) error {
	if !s.hasToken(ctx) {
		s.reset()
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.client.Get(ctx, cartPath)
	var items []Item
	if err == nil {
		items, err = apiclient.DecodeJSON[[]Item](resp)
	}
	if err != nil {
		s.logger.Log(ctx, apiclient.LogLevel(err), "failed to fetch cart",
			logger.Component("cart"),
			logger.Error(err),
		)
		if apiclient.IsUnauthorized(err) {
			s.reset()
		}
		return err
	}

	s.replace(items)
	s.logger.DebugContext(ctx, "cart fetched",
		logger.Component("cart"),
		logger.Count("items", len(items)),
	)
	return nil
}

// Add puts quantity units of productID into the cart. Quantities below one
// default to a single unit.
func (s *Store) Add(ctx context.Context, productID int64, quantity int) error {
	if !ValidQuantity(quantity) {
		quantity = 1
	}
	if !s.hasToken(ctx) {
		return apiclient.LocalFailure(MsgLoginToAdd, ErrNoToken)
	}

	_, err := s.client.Post(ctx, addPath, map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	if err != nil {
		return apiclient.NewFailure(err, MsgAddFailed)
	}

	s.logger.DebugContext(ctx, "cart item added",
		logger.Component("cart"),
		logger.ProductID(productID),
		logger.Quantity(quantity),
	)
	return s.refetch(ctx, MsgAddFailed)
}

// Update sets the quantity of a cart line. The quantity floor is the caller's
// responsibility; see ValidQuantity.
func (s *Store) Update(ctx context.Context, itemID int64, quantity int) error {
	if !s.hasToken(ctx) {
		return apiclient.LocalFailure(MsgLoginToUpdate, ErrNoToken)
	}

	_, err := s.client.Put(ctx, fmt.Sprintf(updatePath, itemID), map[string]any{
		"quantity": quantity,
	})
	if err != nil {
		return apiclient.NewFailure(err, MsgUpdateFailed)
	}

	s.logger.DebugContext(ctx, "cart item updated",
		logger.Component("cart"),
		logger.CartItemID(itemID),
		logger.Quantity(quantity),
	)
	return s.refetch(ctx, MsgUpdateFailed)
}

// Remove deletes a cart line.
func (s *Store) Remove(ctx context.Context, itemID int64) error {
	if !s.hasToken(ctx) {
		return apiclient.LocalFailure(MsgLoginToRemove, ErrNoToken)
	}

	if _, err := s.client.Delete(ctx, fmt.Sprintf(removePath, itemID)); err != nil {
		return apiclient.NewFailure(err, MsgRemoveFailed)
	}

	s.logger.DebugContext(ctx, "cart item removed",
		logger.Component("cart"),
		logger.CartItemID(itemID),
	)
	return s.refetch(ctx, MsgRemoveFailed)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	if !s.hasToken(ctx) {
		return apiclient.LocalFailure(MsgLoginToClear, ErrNoToken)
	}

	if _, err := s.client.Delete(ctx, clearPath); err != nil {
		return apiclient.NewFailure(err, MsgClearFailed)
	}

	return s.refetch(ctx, MsgClearFailed)
}

// Subscribe returns a subscription to persisted token changes for Watch.
func (s *Store) Subscribe(ctx context.Context) broadcast.Subscriber[tokenstore.Change] {
	return s.tokens.Subscribe(ctx)
}

// Watch re-runs the fetch-or-reset decision whenever sub reports a token change,
// until ctx is done. It closes sub on return.
func (s *Store) Watch(ctx context.Context, sub broadcast.Subscriber[tokenstore.Change]) {
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Receive():
			if !ok {
				return
			}
			if msg.Data.Key != tokenstore.KeyToken {
				continue
			}
			// Errors are already logged by Fetch.
			_ = s.Fetch(ctx)
		}
	}
}

// Items returns a copy of the cached lines.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Summary returns the summary of the cached lines.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// State returns the outcome of the last fetch cycle.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// refetch resynchronizes after a successful mutation. The mutation itself
// succeeded, so a failed re-fetch is reported with the operation's fallback.
func (s *Store) refetch(ctx context.Context, fallback string) error {
	if err := s.Fetch(ctx); err != nil {
		return apiclient.NewFailure(err, fallback)
	}
	return nil
}

func (s *Store) hasToken(ctx context.Context) bool {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read persisted token",
			logger.Component("cart"),
			logger.Error(err),
		)
		return false
	}
	return token != ""
}

func (s *Store) replace(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.summary = Summarize(items)
	s.state = StateLoaded
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.summary = Summarize(nil)
	s.state = StateEmpty
	s.loading = false
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
	if v {
		s.state = StateLoading
	} else if s.state == StateLoading {
		s.state = StateIdle
	}
}
