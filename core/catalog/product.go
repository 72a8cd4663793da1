package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The API owns it; this package only reads and
// forwards admin edits.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ClampQuantity bounds a requested quantity to [1, stock]. With no stock the
// result is 1 so callers always hold a valid quantity.
func ClampQuantity(q, stock int) int {
	if q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}

// ProductInput is the admin create/update form.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	Description string
	// Image is optional; on update a nil image keeps the current one.
	Image *Image
}

// Validate checks the form before it is sent.
func (in ProductInput) Validate() error {
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return ErrInvalidProduct
	}
	if in.Image != nil {
		return in.Image.Validate()
	}
	return nil
}
