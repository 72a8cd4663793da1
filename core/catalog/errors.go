package catalog

import "errors"

var (
	ErrNilClient        = errors.New("api client is required")
	ErrImageTooLarge    = errors.New("image exceeds maximum size")
	ErrImageType        = errors.New("unsupported image type")
	ErrInvalidProduct   = errors.New("invalid product input")
	ErrInvalidProductID = errors.New("product id must be positive")
)

// User-facing messages.
const (
	MsgLoadProductsFailed = "Failed to load products"
	MsgLoadProductFailed  = "Product not found or failed to load"
	MsgSaveFailed         = "Failed to save product"
	MsgDeleteFailed       = "Failed to delete product"
	MsgImageTooLarge      = "File size must be less than 2mb"
	MsgImageType          = "Only PNG, JPG, JPEG, and WEBP files are allowed"
)
