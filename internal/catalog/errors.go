package catalog

import "errors"

var (
	ErrInvalidProductName = errors.New("invalid product name")

	ErrInvalidCategory = errors.New("invalid product category")

	ErrInvalidPrice = errors.New("promotion price must be positive")

	// ErrNoProducts means a required category has no catalog rows. Runs abort
	// on it rather than silently generating nothing.
	ErrNoProducts = errors.New("no products available")
)
