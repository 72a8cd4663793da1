package storefront_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/app/storefront"
	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/session"
	"github.com/dmitrymomot/storefront/core/tokenstore"
	"github.com/dmitrymomot/storefront/integration/database/redis"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Unauthenticated."})
			return
		}
		switch r.URL.Path {
		case "/api/user":
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": "Ann", "email": "ann@example.com"})
		case "/api/cart":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "product_id": 10, "quantity": 2, "price": "3.50"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func baseConfig(apiURL string) storefront.Config {
	return storefront.Config{
		AppName:        "storefront-test",
		Env:            "testing",
		APIURL:         apiURL,
		APITimeout:     5 * time.Second,
		TokenStore:     string(tokenstore.StoreTypeMemory),
		RedisKeyPrefix: "test:",
	}
}

func TestNewApp_InvalidStore(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("http://127.0.0.1:1/api")
	cfg.TokenStore = "cookie"

	_, err := storefront.NewApp(context.Background(),
		storefront.WithConfig(cfg),
		storefront.WithLogger(logger.Discard()),
	)
	assert.ErrorIs(t, err, tokenstore.ErrInvalidStoreType)
}

func TestApp_StartAnonymous(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	app, err := storefront.NewApp(context.Background(),
		storefront.WithConfig(baseConfig(srv.URL+"/api")),
		storefront.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)
	defer app.Close()

	state := app.Start(context.Background())
	assert.Equal(t, session.StateAnonymous, state)
	assert.False(t, app.Session().Loading())
	assert.False(t, app.Session().IsAuthenticated())
	assert.Equal(t, 0, app.Cart().Summary().Count)
	assert.True(t, app.Cart().Summary().Total.IsZero())
}

func TestApp_StartWithFileToken(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	cfg := baseConfig(srv.URL + "/api")
	cfg.TokenStore = string(tokenstore.StoreTypeFile)
	cfg.TokenFile = filepath.Join(t.TempDir(), "session.json")

	seed := tokenstore.NewFileStore(cfg.TokenFile, 1)
	require.NoError(t, seed.Save(context.Background(), "tok", nil))
	require.NoError(t, seed.Close())

	app, err := storefront.NewApp(context.Background(),
		storefront.WithConfig(cfg),
		storefront.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)
	defer app.Close()

	state := app.Start(context.Background())
	assert.Equal(t, session.StateAuthenticated, state)
	assert.Equal(t, "Ann", app.Session().User().Name)
	assert.Equal(t, 2, app.Cart().Summary().Count)
	assert.Equal(t, "7.00", app.Cart().Summary().Total.StringFixed(2))
}

func TestApp_LogoutElsewhereResetsCart(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	srv := fakeAPI(t)

	cfg := baseConfig(srv.URL + "/api")
	cfg.TokenStore = string(tokenstore.StoreTypeRedis)
	cfg.Redis = redis.Config{ConnectionURL: "redis://" + mr.Addr(), RetryAttempts: 1, RetryInterval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := storefront.NewApp(ctx,
		storefront.WithConfig(cfg),
		storefront.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Tokens().Save(ctx, "tok", []byte(`{"id":1,"name":"Ann"}`)))
	require.Equal(t, session.StateAuthenticated, app.Start(ctx))
	require.Equal(t, 2, app.Cart().Summary().Count)

	// A second process sharing the same redis logs out.
	client, err := redis.Connect(ctx, cfg.Redis)
	require.NoError(t, err)
	defer client.Close()
	other, err := tokenstore.NewRedisStore(client, cfg.RedisKeyPrefix, 0, 1)
	require.NoError(t, err)
	defer other.Close()
	require.NoError(t, other.Clear(ctx))

	assert.Eventually(t, func() bool {
		return !app.Session().IsAuthenticated() && app.Cart().Summary().Count == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestApp_ClearRightAfterStart(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	tokens := tokenstore.NewMemoryStore(8)
	defer tokens.Close()
	require.NoError(t, tokens.Save(context.Background(), "tok", nil))

	app, err := storefront.NewApp(context.Background(),
		storefront.WithConfig(baseConfig(srv.URL+"/api")),
		storefront.WithLogger(logger.Discard()),
		storefront.WithTokenStore(tokens),
	)
	require.NoError(t, err)
	defer app.Close()

	require.Equal(t, session.StateAuthenticated, app.Start(context.Background()))
	// No wait: the watchers may not be scheduled yet.
	require.NoError(t, tokens.Clear(context.Background()))

	assert.Eventually(t, func() bool {
		return app.Session().State() == session.StateAnonymous && app.Cart().Summary().Count == 0
	}, time.Second, 10*time.Millisecond)
}

func TestConfig_TokenFilePath(t *testing.T) {
	t.Parallel()

	cfg := storefront.Config{TokenFile: "/tmp/x.json"}
	assert.Equal(t, "/tmp/x.json", cfg.TokenFilePath())

	cfg = storefront.Config{AppName: "shop"}
	assert.Contains(t, cfg.TokenFilePath(), "shop")
}

func TestApp_CheckoutFailureLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   map[string]any
		level  string
	}{
		{"business rule", http.StatusBadRequest, map[string]any{"message": "Cart is empty"}, "level=WARN"},
		{"expired session", http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."}, "level=DEBUG"},
		{"server error", http.StatusInternalServerError, map[string]any{"message": "Server Error"}, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				switch r.URL.Path {
				case "/api/user":
					_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": "Ann"})
				case "/api/cart":
					_ = json.NewEncoder(w).Encode([]any{})
				default:
					w.WriteHeader(tt.status)
					_ = json.NewEncoder(w).Encode(tt.body)
				}
			}))
			t.Cleanup(srv.Close)

			tokens := tokenstore.NewMemoryStore(4)
			defer tokens.Close()
			require.NoError(t, tokens.Save(context.Background(), "tok", nil))

			cfg := baseConfig(srv.URL + "/api")
			cfg.LogLevel = "debug"
			var logs bytes.Buffer
			app, err := storefront.NewApp(context.Background(),
				storefront.WithConfig(cfg),
				storefront.WithTokenStore(tokens),
				storefront.WithLogOutput(&logs),
			)
			require.NoError(t, err)
			defer app.Close()

			require.Equal(t, session.StateAuthenticated, app.Start(context.Background()))

			_, err = app.Orders().Checkout(context.Background())
			require.Error(t, err)

			var line string
			for l := range strings.Lines(logs.String()) {
				if strings.Contains(l, `msg="checkout failed"`) {
					line = l
				}
			}
			require.NotEmpty(t, line)
			assert.Contains(t, line, tt.level)
		})
	}
}
