package activity

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")

	ErrInvalidPrice = errors.New("promotion price must be positive")

	ErrInvalidDiscount = errors.New("discount must be non-negative")

	ErrInvalidTotal = errors.New("total must be positive")
)
