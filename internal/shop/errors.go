package shop

import (
	"errors"

	"storefront/internal/api"
)

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

var (
	ErrInvalidAction = api.ErrInvalidAction
	// ErrMissingOrderID is returned when checkout succeeded at the HTTP level
	// but carried no order id. It matches api.ErrMissingField.
	ErrMissingOrderID       error = &kindError{msg: "backend did not return an order ID", kind: api.ErrMissingField}
	ErrDefaultAddressDelete       = errors.New("cannot delete default address")
	ErrCheckoutNotReady           = errors.New("checkout is not ready")
	ErrStoreClosed                = errors.New("store is closed")
	ErrAddressNotFound            = errors.New("address not found")
)
