package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the product snapshot attached to an order line.
type Product struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *Product        `json:"product"`
}

// Subtotal returns quantity × unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Name returns the product name, or "Product" when the snapshot is missing.
func (i OrderItem) Name() string {
	if i.Product == nil || i.Product.Name == "" {
		return "Product"
	}
	return i.Product.Name
}

// Order is a placed order.
type Order struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `json:"order_items"`
}

// StatusLabel returns the display label for an order status. Unknown statuses
// are returned unchanged.
func StatusLabel(status string) string {
	switch status {
	case "pending":
		return "Pending"
	case "processing":
		return "Processing"
	case "shipped":
		return "Shipped"
	case "delivered":
		return "Delivered"
	case "cancelled":
		return "Cancelled"
	default:
		return status
	}
}
