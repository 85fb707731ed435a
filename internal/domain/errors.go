package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProofRequired      = errors.New("payment proof is required for electronic payments")
	ErrMissingContact     = errors.New("customer name, phone and address are required")
	ErrUnknownStatus      = errors.New("unknown order status")
)
