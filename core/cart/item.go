package cart

import "github.com/shopspring/decimal"

// Product is the product snapshot embedded in a cart line.
type Product struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Stock int    `json:"stock"`
}

// Item is a cart line as returned by the API.
type Item struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   Product         `json:"product"`
}

// Subtotal returns quantity × unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LowStock reports whether the line asks for more units than are in stock.
func (i Item) LowStock() bool {
	return i.Product.Stock < i.Quantity
}

// Summary is derived from the items and never stored on its own.
type Summary struct {
	Count int
	Total decimal.Decimal
}

// Summarize computes the cart summary for items.
func Summarize(items []Item) Summary {
	s := Summary{Total: decimal.Zero}
	for _, it := range items {
		s.Count += it.Quantity
		s.Total = s.Total.Add(it.Subtotal())
	}
	return s
}

// ValidQuantity reports whether q is an acceptable line quantity.
func ValidQuantity(q int) bool {
	return q >= 1
}
