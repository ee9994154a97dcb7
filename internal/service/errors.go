package service

import "errors"

// Sentinel errors returned by service operations. Transport maps them to
// HTTP status codes; anything unwrapped is treated as internal.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("not enough rights")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateCode   = errors.New("coupon code already in use")
	ErrExpired         = errors.New("coupon is not valid at this time")
	ErrAlreadyApplied  = errors.New("cart already has a coupon applied")
	ErrNoEligibleItems = errors.New("no items in cart are eligible for this coupon")
	ErrOutOfStock      = errors.New("not enough stock")
	ErrEmptyCart       = errors.New("no items in cart")
)
