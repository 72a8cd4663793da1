package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/storefront/core/apiclient"
	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/tokenstore"
	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

// API endpoints used by the manager.
const (
	userPath     = "/user"
	loginPath    = "/login"
	registerPath = "/register"
	logoutPath   = "/logout"
)

// LoginResult is returned by Login and Register on success.
type LoginResult struct {
	User User
	// Landing is the path the caller should navigate to.
	Landing string
}

// RegisterParams holds the registration form.
type RegisterParams struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Manager holds the current identity and keeps it consistent with the persisted token.
// The persisted token is the source of truth: Initialize derives state from it and
// Watch follows every change made to it, including changes made by other processes.
type Manager struct {
	client    *apiclient.Client
	store     tokenstore.Store
	navigator apiclient.Navigator
	logger    *slog.Logger

	mu      sync.RWMutex
	user    *User
	state   State
	loading bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithNavigator sets the navigator used by Logout.
func WithNavigator(n apiclient.Navigator) Option {
	return func(m *Manager) {
		if n != nil {
			m.navigator = n
		}
	}
}

// New creates a manager in StateUnknown. Call Initialize before reading state.
func New(client *apiclient.Client, opts ...Option) (*Manager, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	m := &Manager{
		client:    client,
		store:     client.Store(),
		navigator: apiclient.NopNavigator,
		logger:    slog.Default(),
		state:     StateUnknown,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Initialize derives the session from the persisted token. With a token it probes
// the current-user endpoint; any failure clears the token and identity. Loading is
// true for the duration of the call and false afterwards on every branch.
func (m *Manager) Initialize(ctx context.Context) State {
	m.mu.Lock()
	m.state = StateUnknown
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, err := m.store.Token(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to read persisted token",
			logger.Component("session"),
			logger.Error(err),
		)
	}
	if token == "" {
		m.setAnonymous()
		return StateAnonymous
	}

	resp, err := m.client.Get(ctx, userPath)
	var user User
	if err == nil {
		user, err = apiclient.DecodeJSON[User](resp)
	}
	if err != nil {
		m.logger.WarnContext(ctx, "session probe failed, clearing credentials",
			logger.Component("session"),
			logger.Error(err),
		)
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.logger.ErrorContext(ctx, "failed to clear credentials",
				logger.Component("session"),
				logger.Error(clearErr),
			)
		}
		m.setAnonymous()
		return StateAnonymous
	}

	if identity, err := json.Marshal(user); err == nil {
		if err := m.store.SaveIdentity(ctx, identity); err != nil {
			m.logger.ErrorContext(ctx, "failed to persist identity snapshot",
				logger.Component("session"),
				logger.Error(err),
			)
		}
	}

	m.setAuthenticated(user)
	m.logger.DebugContext(ctx, "session restored",
		logger.Component("session"),
		logger.UserID(user.ID),
	)
	return StateAuthenticated
}

// Login authenticates with email and password. On failure the state is unchanged
// and the returned *apiclient.Failure carries the server payload or MsgLoginFailed.
func (m *Manager) Login(ctx context.Context, email, password string) (LoginResult, error) {
	resp, err := m.client.Post(ctx, loginPath, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, apiclient.NewFailure(err, MsgLoginFailed)
	}

	return m.authenticate(ctx, resp, MsgLoginFailed)
}

// Register creates an account and authenticates it. Missing fields and a mismatched
// confirmation fail locally without contacting the API.
func (m *Manager) Register(ctx context.Context, p RegisterParams) (LoginResult, error) {
	if fields := p.missingFields(); len(fields) > 0 {
		return LoginResult{}, &apiclient.Failure{
			Message: MsgMissingFields,
			Fields:  fields,
			Err:     ErrMissingFields,
		}
	}
	if p.Password != p.PasswordConfirmation {
		return LoginResult{}, &apiclient.Failure{
			Message: MsgPasswordMismatch,
			Fields:  map[string][]string{"password": {"The password field confirmation does not match."}},
			Err:     ErrPasswordMismatch,
		}
	}

	resp, err := m.client.Post(ctx, registerPath, map[string]string{
		"name":                  p.Name,
		"email":                 p.Email,
		"password":              p.Password,
		"password_confirmation": p.PasswordConfirmation,
	})
	if err != nil {
		return LoginResult{}, apiclient.NewFailure(err, MsgRegistrationFailed)
	}

	return m.authenticate(ctx, resp, MsgRegistrationFailed)
}

// Logout notifies the API, then clears the credentials and redirects to the login
// page. A failing notification is logged and never prevents the local logout.
func (m *Manager) Logout(ctx context.Context) {
	if _, err := m.client.Post(ctx, logoutPath, nil); err != nil {
		m.logger.WarnContext(ctx, "logout notification failed",
			logger.Component("session"),
			logger.Error(err),
		)
	}

	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.logger.ErrorContext(ctx, "failed to clear credentials",
			logger.Component("session"),
			logger.Error(err),
		)
	}
	m.setAnonymous()
	m.navigator.Redirect(apiclient.LoginPath)
}

// Sync reconciles the in-memory identity with the persisted token and snapshot.
// It never performs network calls.
func (m *Manager) Sync(ctx context.Context) State {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to read persisted token",
			logger.Component("session"),
			logger.Error(err),
		)
		return m.State()
	}
	if token == "" {
		m.setAnonymous()
		return StateAnonymous
	}

	identity, err := m.store.Identity(ctx)
	if err != nil || len(identity) == 0 {
		return m.State()
	}

	var user User
	if err := json.Unmarshal(identity, &user); err != nil {
		m.logger.WarnContext(ctx, "ignoring malformed identity snapshot",
			logger.Component("session"),
			logger.Error(err),
		)
		return m.State()
	}

	m.setAuthenticated(user)
	return StateAuthenticated
}

// Watch applies every change delivered on sub until ctx is done, then closes sub.
// Take sub from Subscribe before starting the goroutine so changes made in
// between are not lost.
func (m *Manager) Watch(ctx context.Context, sub broadcast.Subscriber[tokenstore.Change]) {
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Receive():
			if !ok {
				return
			}
			state := m.Sync(ctx)
			m.logger.DebugContext(ctx, "storage change applied",
				logger.Component("session"),
				logger.Event("storage_change"),
				logger.Key("key", string(msg.Data.Key)),
				logger.Key("remote", msg.Data.Remote),
				logger.Result(state.String()),
			)
		}
	}
}

// Subscribe exposes the storage-change signal so other stores can react to login and logout.
func (m *Manager) Subscribe(ctx context.Context) broadcast.Subscriber[tokenstore.Change] {
	return m.store.Subscribe(ctx)
}

// User returns the current identity, or nil when anonymous.
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Loading reports whether Initialize is in progress.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// IsAuthenticated reports whether an identity is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsAdmin reports whether the current identity has the admin role.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.IsAdmin
}

func (m *Manager) authenticate(ctx context.Context, resp *apiclient.Response, fallback string) (LoginResult, error) {
	auth, err := apiclient.DecodeJSON[authResponse](resp)
	if err != nil {
		return LoginResult{}, apiclient.LocalFailure(fallback, err)
	}
	if auth.Token == "" {
		return LoginResult{}, apiclient.LocalFailure(fallback, ErrNoToken)
	}

	identity, err := json.Marshal(auth.User)
	if err != nil {
		return LoginResult{}, apiclient.LocalFailure(fallback, err)
	}
	if err := m.store.Save(ctx, auth.Token, identity); err != nil {
		m.logger.ErrorContext(ctx, "failed to persist credentials",
			logger.Component("session"),
			logger.Error(err),
		)
		return LoginResult{}, apiclient.LocalFailure(fallback, err)
	}

	m.setAuthenticated(auth.User)
	m.logger.InfoContext(ctx, "authenticated",
		logger.Component("session"),
		logger.UserID(auth.User.ID),
		logger.Email(auth.User.Email),
	)

	return LoginResult{User: auth.User, Landing: LandingPath(auth.User)}, nil
}

func (m *Manager) setAuthenticated(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = &u
	m.state = StateAuthenticated
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.state = StateAnonymous
}

func (p RegisterParams) missingFields() map[string][]string {
	fields := map[string][]string{}
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields[name] = []string{"The " + strings.ReplaceAll(name, "_", " ") + " field is required."}
		}
	}
	check("name", p.Name)
	check("email", p.Email)
	check("password", p.Password)
	check("password_confirmation", p.PasswordConfirmation)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// IsValidationFailure reports whether err is a Failure with per-field messages.
func IsValidationFailure(err error) bool {
	f, ok := apiclient.AsFailure(err)
	return ok && len(f.Fields) > 0
}

