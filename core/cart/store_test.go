package cart_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/core/apiclient"
	"github.com/dmitrymomot/storefront/core/cart"
	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/tokenstore"
)

type fakeLine struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Product   struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	} `json:"product"`
}

// fakeCartAPI is an in-memory cart backend with server-side pricing.
type fakeCartAPI struct {
	mu     sync.Mutex
	lines  []fakeLine
	nextID int64
	prices map[int64]string
	calls  atomic.Int32
}

func newFakeCartAPI() *fakeCartAPI {
	return &fakeCartAPI{
		nextID: 1,
		prices: map[int64]string{10: "19.99", 20: "5.50"},
	}
}

func (f *fakeCartAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	if r.Header.Get("Authorization") != "Bearer tok" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	switch {
	case r.Method == http.MethodGet && path == "/cart":
		writeJSON(w, http.StatusOK, f.lines)
	case r.Method == http.MethodPost && path == "/cart/add":
		var body struct {
			ProductID int64 `json:"product_id"`
			Quantity  int   `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		price, ok := f.prices[body.ProductID]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Product not found"})
			return
		}
		line := fakeLine{ID: f.nextID, ProductID: body.ProductID, Quantity: body.Quantity, Price: price}
		line.Product.Name = "Product " + strconv.FormatInt(body.ProductID, 10)
		line.Product.Stock = 10
		f.nextID++
		f.lines = append(f.lines, line)
		writeJSON(w, http.StatusCreated, line)
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/cart/update/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(path, "/cart/update/"), 10, 64)
		var body struct {
			Quantity int `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for i := range f.lines {
			if f.lines[i].ID == id {
				f.lines[i].Quantity = body.Quantity
				writeJSON(w, http.StatusOK, f.lines[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{})
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/cart/remove/"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(path, "/cart/remove/"), 10, 64)
		for i := range f.lines {
			if f.lines[i].ID == id {
				f.lines = append(f.lines[:i], f.lines[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodDelete && path == "/cart/clear":
		f.lines = nil
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newStore(t *testing.T, handler http.Handler) (*cart.Store, tokenstore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemoryStore(8)
	t.Cleanup(func() { _ = tokens.Close() })

	client, err := apiclient.New(srv.URL+"/api", tokens, apiclient.WithLogger(logger.Discard()))
	require.NoError(t, err)

	s, err := cart.New(client, cart.WithLogger(logger.Discard()))
	require.NoError(t, err)
	return s, tokens
}

func assertSummaryInvariant(t *testing.T, s *cart.Store) {
	t.Helper()
	items := s.Items()
	count := 0
	total := decimal.Zero
	for _, it := range items {
		count += it.Quantity
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	sum := s.Summary()
	assert.Equal(t, count, sum.Count)
	assert.True(t, total.Equal(sum.Total), "total %s != %s", sum.Total, total)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cart.New(nil)
	assert.ErrorIs(t, err, cart.ErrNilClient)
}

func TestStore_WithoutToken(t *testing.T) {
	t.Parallel()

	api := newFakeCartAPI()
	s, _ := newStore(t, api)
	ctx := context.Background()

	require.NoError(t, s.Fetch(ctx))
	assert.Equal(t, cart.StateEmpty, s.State())
	assert.Equal(t, 0, s.Summary().Count)
	assert.True(t, s.Summary().Total.IsZero())

	tests := []struct {
		name string
		op   func() error
		msg  string
	}{
		{"add", func() error { return s.Add(ctx, 10, 1) }, cart.MsgLoginToAdd},
		{"update", func() error { return s.Update(ctx, 1, 2) }, cart.MsgLoginToUpdate},
		{"remove", func() error { return s.Remove(ctx, 1) }, cart.MsgLoginToRemove},
		{"clear", func() error { return s.Clear(ctx) }, cart.MsgLoginToClear},
	}
	for _, tt := range tests {
		err := tt.op()
		require.Error(t, err, tt.name)
		assert.ErrorIs(t, err, cart.ErrNoToken, tt.name)
		assert.Equal(t, tt.msg, err.Error(), tt.name)
	}

	assert.Zero(t, api.calls.Load())
}

func TestStore_MutateThenRefetch(t *testing.T) {
	t.Parallel()

	api := newFakeCartAPI()
	s, tokens := newStore(t, api)
	ctx := context.Background()
	require.NoError(t, tokens.Save(ctx, "tok", nil))

	require.NoError(t, s.Add(ctx, 10, 2))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(10), items[0].ProductID)
	assert.Equal(t, "39.98", s.Summary().Total.StringFixed(2))
	assert.Equal(t, cart.StateLoaded, s.State())
	assert.False(t, s.Loading())
	assertSummaryInvariant(t, s)

	require.NoError(t, s.Add(ctx, 20, 0))
	assert.Equal(t, 3, s.Summary().Count)
	assertSummaryInvariant(t, s)

	require.NoError(t, s.Update(ctx, items[0].ID, 5))
	assert.Equal(t, 6, s.Summary().Count)
	assertSummaryInvariant(t, s)

	require.NoError(t, s.Remove(ctx, items[0].ID))
	assert.Len(t, s.Items(), 1)
	assertSummaryInvariant(t, s)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Summary().Count)
	assertSummaryInvariant(t, s)
}

func TestStore_Failures(t *testing.T) {
	t.Parallel()

	t.Run("server message is surfaced", func(t *testing.T) {
		t.Parallel()
		api := newFakeCartAPI()
		s, tokens := newStore(t, api)
		ctx := context.Background()
		require.NoError(t, tokens.Save(ctx, "tok", nil))

		err := s.Add(ctx, 999, 1)
		require.Error(t, err)
		assert.Equal(t, "Product not found", err.Error())
	})

	t.Run("empty payload falls back", func(t *testing.T) {
		t.Parallel()
		s, tokens := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		ctx := context.Background()
		require.NoError(t, tokens.Save(ctx, "tok", nil))

		assert.EqualError(t, s.Add(ctx, 1, 1), cart.MsgAddFailed)
		assert.EqualError(t, s.Update(ctx, 1, 1), cart.MsgUpdateFailed)
		assert.EqualError(t, s.Remove(ctx, 1), cart.MsgRemoveFailed)
		assert.EqualError(t, s.Clear(ctx), cart.MsgClearFailed)
	})

	t.Run("unauthorized fetch resets cart", func(t *testing.T) {
		t.Parallel()
		api := newFakeCartAPI()
		s, tokens := newStore(t, api)
		ctx := context.Background()
		require.NoError(t, tokens.Save(ctx, "tok", nil))
		require.NoError(t, s.Add(ctx, 10, 1))
		require.Equal(t, 1, s.Summary().Count)

		require.NoError(t, tokens.Save(ctx, "stale", nil))
		err := s.Fetch(ctx)
		assert.True(t, apiclient.IsUnauthorized(err))
		assert.Empty(t, s.Items())
		assert.Equal(t, 0, s.Summary().Count)
		assert.Equal(t, cart.StateEmpty, s.State())

		token, err := tokens.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestStore_Watch(t *testing.T) {
	t.Parallel()

	api := newFakeCartAPI()
	api.lines = []fakeLine{{ID: 1, ProductID: 10, Quantity: 4, Price: "19.99"}}
	s, tokens := newStore(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := s.Subscribe(ctx)
	require.NoError(t, tokens.Save(ctx, "tok", nil))
	go s.Watch(ctx, sub)

	require.Eventually(t, func() bool {
		return s.Summary().Count == 4
	}, time.Second, 10*time.Millisecond)
	assertSummaryInvariant(t, s)

	require.NoError(t, tokens.Clear(ctx))
	assert.Eventually(t, func() bool {
		return s.State() == cart.StateEmpty && s.Summary().Count == 0
	}, time.Second, 10*time.Millisecond)
}
