package model

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrPriceMismatch      = errors.New("unit price does not match catalog price")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is temporarily locked")
)
