package storefront

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/storefront/core/apiclient"
	"github.com/dmitrymomot/storefront/core/cart"
	"github.com/dmitrymomot/storefront/core/catalog"
	"github.com/dmitrymomot/storefront/core/config"
	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/orders"
	"github.com/dmitrymomot/storefront/core/session"
	"github.com/dmitrymomot/storefront/core/tokenstore"
	"github.com/dmitrymomot/storefront/integration/database/redis"
)

// App wires the token store, API client and the stores built on top of them.
type App struct {
	config     Config
	configSet  bool
	logger     *slog.Logger
	logOutput  io.Writer
	navigator  apiclient.Navigator
	httpClient *http.Client

	tokens     tokenstore.Store
	ownsTokens bool
	redis      goredis.UniversalClient

	client  *apiclient.Client
	session *session.Manager
	cart    *cart.Store
	catalog *catalog.Service
	orders  *orders.Service

	mu       sync.Mutex
	stop     context.CancelFunc
	watchers *errgroup.Group
}

type AppOption func(*App) error

// NewApp loads the configuration, opens the token store and builds all stores.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{navigator: apiclient.NopNavigator}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.configSet {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		out := app.logOutput
		if out == nil {
			out = os.Stderr
		}
		app.logger = logger.New(
			logger.WithEnvironment(app.config.Env, app.config.AppName),
			logger.WithLevel(logger.ParseLevel(app.config.LogLevel)),
			logger.WithOutput(out),
		)
	}

	if app.tokens == nil {
		if err := app.openTokenStore(ctx); err != nil {
			return nil, err
		}
	}

	if err := app.buildStores(); err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.configSet = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

// WithLogOutput sets where the default logger writes. It defaults to stderr and
// is ignored when WithLogger is used.
func WithLogOutput(w io.Writer) AppOption {
	return func(app *App) error {
		if w == nil {
			return errors.New("log output cannot be nil")
		}
		app.logOutput = w
		return nil
	}
}

func WithNavigator(nav apiclient.Navigator) AppOption {
	return func(app *App) error {
		if nav == nil {
			return errors.New("navigator cannot be nil")
		}
		app.navigator = nav
		return nil
	}
}

// WithTokenStore uses store instead of the one selected by TOKEN_STORE.
// The caller keeps ownership and must close it.
func WithTokenStore(store tokenstore.Store) AppOption {
	return func(app *App) error {
		if store == nil {
			return errors.New("token store cannot be nil")
		}
		app.tokens = store
		return nil
	}
}

func WithHTTPClient(hc *http.Client) AppOption {
	return func(app *App) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		app.httpClient = hc
		return nil
	}
}

func (a *App) openTokenStore(ctx context.Context) error {
	storeType := tokenstore.StoreType(a.config.TokenStore)
	opts := []tokenstore.StoreOption{
		tokenstore.WithKeyPrefix(a.config.RedisKeyPrefix),
		tokenstore.WithTTL(a.config.TokenTTL),
	}

	switch storeType {
	case tokenstore.StoreTypeFile:
		opts = append(opts, tokenstore.WithFilePath(a.config.TokenFilePath()))
	case tokenstore.StoreTypeRedis:
		client, err := redis.Connect(ctx, a.config.Redis)
		if err != nil {
			return err
		}
		a.redis = client
		opts = append(opts, tokenstore.WithRedisClient(client))
	}

	store, err := tokenstore.NewStore(storeType, opts...)
	if err != nil {
		if a.redis != nil {
			_ = a.redis.Close()
		}
		return err
	}

	a.tokens = store
	a.ownsTokens = true
	return nil
}

func (a *App) buildStores() error {
	clientOpts := []apiclient.Option{
		apiclient.WithLogger(a.logger),
		apiclient.WithNavigator(a.navigator),
		apiclient.WithUserAgent(a.config.AppName),
	}
	if a.httpClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(a.httpClient))
	}
	if a.config.APITimeout > 0 {
		clientOpts = append(clientOpts, apiclient.WithTimeout(a.config.APITimeout))
	}

	client, err := apiclient.New(a.config.APIURL, a.tokens, clientOpts...)
	if err != nil {
		return err
	}
	a.client = client

	if a.session, err = session.New(client,
		session.WithLogger(a.logger),
		session.WithNavigator(a.navigator),
	); err != nil {
		return err
	}

	if a.cart, err = cart.New(client, cart.WithLogger(a.logger)); err != nil {
		return err
	}

	if a.catalog, err = catalog.New(client, catalog.WithLogger(a.logger)); err != nil {
		return err
	}

	a.orders, err = orders.New(client,
		orders.WithLogger(a.logger),
		orders.WithNavigator(a.navigator),
		orders.WithCart(a.cart),
	)
	return err
}

// Start initializes the session, starts the storage watchers and performs the
// first cart fetch. Watchers run until ctx is done or Close is called.
func (a *App) Start(ctx context.Context) session.State {
	state := a.session.Initialize(ctx)

	a.mu.Lock()
	if a.stop == nil {
		watchCtx, cancel := context.WithCancel(ctx)
		a.stop = cancel
		// Subscriptions exist before Start returns; the loops may start later.
		sessionSub := a.session.Subscribe(watchCtx)
		cartSub := a.cart.Subscribe(watchCtx)
		a.watchers = &errgroup.Group{}
		a.watchers.Go(func() error {
			a.session.Watch(watchCtx, sessionSub)
			return nil
		})
		a.watchers.Go(func() error {
			a.cart.Watch(watchCtx, cartSub)
			return nil
		})
	}
	a.mu.Unlock()

	// A failed first fetch keeps an empty cart; the store logs it.
	_ = a.cart.Fetch(ctx)

	a.logger.DebugContext(ctx, "storefront started",
		logger.Component("app"),
		logger.Result(state.String()),
	)
	return state
}

// Close stops the watchers and releases the token store and redis connection
// when the app opened them.
func (a *App) Close() error {
	a.mu.Lock()
	stop, watchers := a.stop, a.watchers
	a.stop, a.watchers = nil, nil
	a.mu.Unlock()

	if stop != nil {
		stop()
		_ = watchers.Wait()
	}

	var errs []error
	if a.ownsTokens && a.tokens != nil {
		errs = append(errs, a.tokens.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}

func (a *App) Config() Config { return a.config }
func (a *App) Logger() *slog.Logger { return a.logger }
func (a *App) Tokens() tokenstore.Store { return a.tokens }
func (a *App) Client() *apiclient.Client { return a.client }
func (a *App) Session() *session.Manager { return a.session }
func (a *App) Cart() *cart.Store { return a.cart }
func (a *App) Catalog() *catalog.Service { return a.catalog }
func (a *App) Orders() *orders.Service { return a.orders }
