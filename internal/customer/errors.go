package customer

import "errors"

var (
	ErrInvalidName = errors.New("invalid customer name")

	ErrInvalidGender = errors.New("invalid customer gender")

	// ErrNoCustomers means the eligible pool for a simulated day is empty.
	ErrNoCustomers = errors.New("no eligible customers")
)
