package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit nil checks,
// following the principle of making zero values useful.

// ============================================================================
// Error Handling
// ============================================================================

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Performance and Timing
// ============================================================================

// Latency creates an attribute for the round trip of an API call.
func Latency(d time.Duration) slog.Attr {
	return slog.Duration("latency", d)
}

// ============================================================================
// Network and HTTP
// ============================================================================

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// RequestID creates an attribute for the X-Request-ID sent with an API call.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// StatusCode creates an attribute for HTTP status codes.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// URL creates an attribute for the full outbound request URL.
func URL(u string) slog.Attr {
	return slog.String("url", u)
}

// ============================================================================
// Generic Metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Result creates an attribute for operation results (success/failure/pending).
func Result(result string) slog.Attr {
	return slog.String("result", result)
}

// Count creates a counter attribute under key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// ============================================================================
// Storefront Domain
// ============================================================================

// UserID creates an attribute for the authenticated user identifier.
// Zero means anonymous and yields an empty Attr.
func UserID(id int64) slog.Attr {
	if id == 0 {
		return slog.Attr{}
	}
	return slog.Int64("user_id", id)
}

// Email creates an attribute for an account email.
func Email(email string) slog.Attr {
	if email == "" {
		return slog.Attr{}
	}
	return slog.String("email", email)
}

// ProductID creates an attribute for catalog product identifiers.
func ProductID(id int64) slog.Attr {
	return slog.Int64("product_id", id)
}

// CartItemID creates an attribute for cart line item identifiers.
func CartItemID(id int64) slog.Attr {
	return slog.Int64("cart_item_id", id)
}

// OrderID creates an attribute for order identifiers.
func OrderID(id int64) slog.Attr {
	return slog.Int64("order_id", id)
}

// Quantity creates an attribute for line item quantities.
func Quantity(n int) slog.Attr {
	return slog.Int("quantity", n)
}

// Page creates an attribute for paginated listings.
func Page(n int) slog.Attr {
	return slog.Int("page", n)
}

// Total creates an attribute for monetary totals rendered as strings.
func Total(amount string) slog.Attr {
	return slog.String("total", amount)
}
