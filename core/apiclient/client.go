package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/tokenstore"
)

// Client is the single gateway to the storefront API. It attaches the persisted
// bearer token to outbound requests and owns the global reaction to a 401:
// the token store is cleared and the navigator is sent to LoginPath.
type Client struct {
	base      *url.URL
	http      *http.Client
	timeout   time.Duration
	store     tokenstore.Store
	navigator Navigator
	logger    *slog.Logger
	userAgent string
}

// New creates a client for the API rooted at baseURL (e.g. http://127.0.0.1:8000/api).
func New(baseURL string, store tokenstore.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, ErrNilTokenStore
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, base.Scheme)
	}

	c := &Client{
		base:      base,
		http:      &http.Client{},
		store:     store,
		navigator: NopNavigator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}

	return c, nil
}

// Store returns the token store the client reads credentials from.
func (c *Client) Store() tokenstore.Store {
	return c.store
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

// Post issues a POST request with a JSON or multipart body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, opts...)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, opts...)
}

// Do sends a request and returns the response for 2xx statuses.
// Any other status yields *HTTPError; a 401 additionally clears the persisted
// credentials and redirects to LoginPath before returning.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	rc := &requestConfig{header: make(http.Header), query: make(url.Values)}
	for _, opt := range opts {
		opt(rc)
	}

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, rc.query), reader)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range rc.header {
		req.Header[k] = v
	}

	token, err := c.store.Token(ctx)
	if err != nil {
		return nil, errors.Join(ErrTokenStore, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Join(ErrTransport, ctxErr)
		}
		c.logger.ErrorContext(ctx, "api request failed",
			logger.Component("apiclient"),
			logger.Method(method),
			logger.URL(req.URL.String()),
			logger.RequestID(requestID),
			logger.Latency(time.Since(start)),
			logger.Error(err),
		)
		return nil, errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}

	c.logger.DebugContext(ctx, "api request",
		logger.Component("apiclient"),
		logger.Method(method),
		logger.Path(path),
		logger.StatusCode(resp.StatusCode),
		logger.RequestID(requestID),
		logger.Latency(time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.forceLogout(ctx, method, path)
		return nil, newHTTPError(resp.StatusCode, data)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, data)
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// forceLogout invalidates the persisted session and sends the user to the login page.
func (c *Client) forceLogout(ctx context.Context, method, path string) {
	c.logger.WarnContext(ctx, "api rejected credentials, clearing session",
		logger.Component("apiclient"),
		logger.Method(method),
		logger.Path(path),
	)

	if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear persisted session",
			logger.Component("apiclient"),
			logger.Error(err),
		)
	}
	c.navigator.Redirect(LoginPath)
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.base
	rel, err := url.Parse(path)
	if err != nil {
		rel = &url.URL{Path: path}
	}

	u.Path = c.base.Path + "/" + strings.TrimLeft(rel.Path, "/")
	u.RawPath = ""
	q := rel.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}
