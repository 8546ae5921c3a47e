package repository

import "errors"

// Sentinel errors returned by the repositories. Handlers compare with
// errors.Is and translate to HTTP statuses.
var (
	ErrNotFound          = errors.New("record not found")
	ErrCartNotActive     = errors.New("cart is not active")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)
