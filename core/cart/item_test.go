package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/core/cart"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []cart.Item
		count int
		total string
	}{
		{name: "empty", items: nil, count: 0, total: "0"},
		{
			name:  "single line",
			items: []cart.Item{{Quantity: 2, Price: decimal.RequireFromString("9.99")}},
			count: 2,
			total: "19.98",
		},
		{
			name: "multiple lines",
			items: []cart.Item{
				{Quantity: 3, Price: decimal.RequireFromString("0.10")},
				{Quantity: 1, Price: decimal.RequireFromString("100")},
				{Quantity: 4, Price: decimal.RequireFromString("2.50")},
			},
			count: 8,
			total: "110.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := cart.Summarize(tt.items)
			assert.Equal(t, tt.count, s.Count)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(s.Total), "got %s", s.Total)
		})
	}
}

func TestItem(t *testing.T) {
	t.Parallel()

	it := cart.Item{Quantity: 3, Price: decimal.RequireFromString("1.25"), Product: cart.Product{Stock: 2}}
	assert.Equal(t, "3.75", it.Subtotal().StringFixed(2))
	assert.True(t, it.LowStock())

	it.Product.Stock = 3
	assert.False(t, it.LowStock())
}

func TestValidQuantity(t *testing.T) {
	t.Parallel()

	assert.False(t, cart.ValidQuantity(-1))
	assert.False(t, cart.ValidQuantity(0))
	assert.True(t, cart.ValidQuantity(1))
	assert.True(t, cart.ValidQuantity(99))
}
