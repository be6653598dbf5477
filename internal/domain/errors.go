package domain

import "errors"

var (
	ErrOwnerIDRequired   = errors.New("ownerID is empty")
	ErrProductIDRequired = errors.New("productID is empty")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrPriceNegative     = errors.New("price must be non-negative")
	// ErrSlotNotFound is returned by slot stores when nothing was written under a key.
	ErrSlotNotFound  = errors.New("slot not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrQuantityRange = errors.New("quantity must be at least 1")
)
