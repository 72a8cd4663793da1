package orders

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/core/apiclient"
	"github.com/dmitrymomot/storefront/core/logger"
)

const ordersPath = "/orders"

// OrdersPagePath is where the shell navigates after a successful checkout.
const OrdersPagePath = "/orders"

// ConfirmationDelay is how long the checkout confirmation is shown before
// navigating to OrdersPagePath.
const ConfirmationDelay = 1500 * time.Millisecond

// CartFetcher resynchronizes the cached cart.
type CartFetcher interface {
	Fetch(ctx context.Context) error
}

// Service lists orders and converts the cart into an order.
type Service struct {
	client    *apiclient.Client
	cart      CartFetcher
	navigator apiclient.Navigator
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNavigator sets the navigator used when checkout requires a login.
func WithNavigator(n apiclient.Navigator) Option {
	return func(s *Service) {
		if n != nil {
			s.navigator = n
		}
	}
}

// WithCart sets the cart re-fetched after a successful checkout.
func WithCart(c CartFetcher) Option {
	return func(s *Service) {
		s.cart = c
	}
}

// New creates an orders service.
func New(client *apiclient.Client, opts ...Option) (*Service, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	s := &Service{
		client:    client,
		navigator: apiclient.NopNavigator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List returns the signed-in user's orders.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	resp, err := s.client.Get(ctx, ordersPath)
	var out []Order
	if err == nil {
		out, err = apiclient.DecodeJSON[[]Order](resp)
	}
	if err != nil {
		s.logger.Log(ctx, apiclient.LogLevel(err), "failed to fetch orders",
			logger.Component("orders"),
			logger.Error(err),
		)
		return nil, &apiclient.Failure{Message: MsgLoadFailed, Err: err}
	}
	return out, nil
}

// Checkout converts the cart into an order and re-fetches the cart. Without a
// token it fails locally and redirects to the login page.
func (s *Service) Checkout(ctx context.Context) (Order, error) {
	token, err := s.client.Store().Token(ctx)
	if err != nil || token == "" {
		s.navigator.Redirect(apiclient.LoginPath)
		return Order{}, apiclient.LocalFailure(MsgLoginToCheckout, ErrNoToken)
	}

	resp, err := s.client.Post(ctx, ordersPath, nil)
	if err != nil {
		s.logger.Log(ctx, apiclient.LogLevel(err), "checkout failed",
			logger.Component("orders"),
			logger.Error(err),
		)
		return Order{}, checkoutFailure(err)
	}

	// The order may be returned bare or wrapped; the cart is resynced either way.
	order, _ := decodeOrder(resp)

	if s.cart != nil {
		if err := s.cart.Fetch(ctx); err != nil {
			s.logger.WarnContext(ctx, "cart refresh after checkout failed",
				logger.Component("orders"),
				logger.Error(err),
			)
		}
	}

	s.logger.InfoContext(ctx, "order placed",
		logger.Component("orders"),
		logger.OrderID(order.ID),
		logger.Total(order.TotalAmount.String()),
	)
	return order, nil
}

func checkoutFailure(err error) *apiclient.Failure {
	httpErr, ok := apiclient.AsHTTPError(err)
	if !ok {
		return apiclient.NewFailure(err, MsgCheckoutFailed)
	}

	switch {
	case httpErr.Unauthorized():
		return &apiclient.Failure{Message: MsgSessionExpired, Err: err}
	case httpErr.Status == http.StatusInternalServerError && strings.Contains(httpErr.Detail, "quantity"):
		return &apiclient.Failure{Message: msgCreationFailed + httpErr.Detail, Err: err}
	default:
		return apiclient.NewFailure(err, MsgCheckoutFailed)
	}
}

type orderEnvelope struct {
	Order *Order `json:"order"`
}

func decodeOrder(resp *apiclient.Response) (Order, error) {
	if env, err := apiclient.DecodeJSON[orderEnvelope](resp); err == nil && env.Order != nil {
		return *env.Order, nil
	}
	return apiclient.DecodeJSON[Order](resp)
}
