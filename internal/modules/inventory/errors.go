package inventory

import "errors"

// Errors returned by the inventory core. Callers match them with errors.Is;
// the core wraps them with context but never recovers from them.
var (
	// ErrInvalidArgument is returned for a bad name, a negative price or
	// quantity, or a non-positive purchase quantity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInactiveProduct is returned when buying a product that is not active.
	ErrInactiveProduct = errors.New("product is inactive")

	// ErrInsufficientStock is returned when a purchase exceeds the stock on hand.
	ErrInsufficientStock = errors.New("not enough items in stock")

	// ErrNotFound is returned when a product is not in the store.
	ErrNotFound = errors.New("product not found in the store inventory")

	// ErrTypeMismatch is returned for a malformed order line or a nil product.
	ErrTypeMismatch = errors.New("type mismatch")
)
