package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/storefront/core/apiclient"
	"github.com/dmitrymomot/storefront/core/logger"
)

const (
	productsPath      = "/products"
	productPath       = "/products/%d"
	adminProductPath  = "/product"
	adminProductIDFmt = "/product/%d"
)

// Service reads the catalog and performs admin product edits.
type Service struct {
	client *apiclient.Client
	logger *slog.Logger
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

// New creates a catalog service.
func New(client *apiclient.Client, opts ...Option) (*Service, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	s := &Service{client: client, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List returns the requested page. Pages below 1 are read as 1.
func (s *Service) List(ctx context.Context, page int) (Page, error) {
	page = max(page, 1)

	resp, err := s.client.Get(ctx, productsPath, apiclient.WithQuery("page", strconv.Itoa(page)))
	var out Page
	if err == nil {
		out, err = apiclient.DecodeJSON[Page](resp)
	}
	if err != nil {
		s.logger.Log(ctx, apiclient.LogLevel(err), "failed to fetch products",
			logger.Component("catalog"),
			logger.Page(page),
			logger.Error(err),
		)
		return Page{}, &apiclient.Failure{Message: MsgLoadProductsFailed, Err: err}
	}
	return out, nil
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, apiclient.LocalFailure(MsgLoadProductFailed, ErrInvalidProductID)
	}

	resp, err := s.client.Get(ctx, fmt.Sprintf(productPath, id))
	var p Product
	if err == nil {
		p, err = apiclient.DecodeJSON[Product](resp)
	}
	if err != nil {
		s.logger.Log(ctx, apiclient.LogLevel(err), "failed to fetch product",
			logger.Component("catalog"),
			logger.ProductID(id),
			logger.Error(err),
		)
		return Product{}, &apiclient.Failure{Message: MsgLoadProductFailed, Err: err}
	}
	return p, nil
}

// Create adds a product.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := validateInput(in); err != nil {
		return Product{}, err
	}

	resp, err := s.client.Post(ctx, adminProductPath, in.form(false))
	if err != nil {
		return Product{}, apiclient.NewFailure(err, MsgSaveFailed)
	}

	p, _ := apiclient.DecodeJSON[Product](resp)
	s.logger.InfoContext(ctx, "product created",
		logger.Component("catalog"),
		logger.ProductID(p.ID),
	)
	return p, nil
}

// Update replaces a product. The request is a multipart POST carrying
// _method=PUT so the image can be uploaded.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	if id <= 0 {
		return Product{}, apiclient.LocalFailure(MsgSaveFailed, ErrInvalidProductID)
	}
	if err := validateInput(in); err != nil {
		return Product{}, err
	}

	resp, err := s.client.Post(ctx, fmt.Sprintf(adminProductIDFmt, id), in.form(true))
	if err != nil {
		return Product{}, apiclient.NewFailure(err, MsgSaveFailed)
	}

	p, _ := apiclient.DecodeJSON[Product](resp)
	s.logger.InfoContext(ctx, "product updated",
		logger.Component("catalog"),
		logger.ProductID(id),
	)
	return p, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apiclient.LocalFailure(MsgDeleteFailed, ErrInvalidProductID)
	}

	if _, err := s.client.Delete(ctx, fmt.Sprintf(adminProductIDFmt, id)); err != nil {
		s.logger.Log(ctx, apiclient.LogLevel(err), "failed to delete product",
			logger.Component("catalog"),
			logger.ProductID(id),
			logger.Error(err),
		)
		return &apiclient.Failure{Message: MsgDeleteFailed, Err: err}
	}

	s.logger.InfoContext(ctx, "product deleted",
		logger.Component("catalog"),
		logger.ProductID(id),
	)
	return nil
}

func validateInput(in ProductInput) error {
	switch err := in.Validate(); err {
	case nil:
		return nil
	case ErrImageTooLarge:
		return apiclient.LocalFailure(MsgImageTooLarge, err)
	case ErrImageType:
		return apiclient.LocalFailure(MsgImageType, err)
	default:
		return apiclient.LocalFailure(MsgSaveFailed, err)
	}
}

func (in ProductInput) form(update bool) *apiclient.Multipart {
	m := apiclient.NewMultipart().
		AddField("name", in.Name).
		AddField("price", in.Price.String()).
		AddField("stock", strconv.Itoa(in.Stock)).
		AddField("description", in.Description)
	if in.Image != nil {
		m.AddFile("image", in.Image.Filename, in.Image.ContentType, in.Image.Data)
	}
	if update {
		m.AddField("_method", "PUT")
	}
	return m
}
