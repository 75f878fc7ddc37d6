package order

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("no items")
	ErrNoValidItems       = errors.New("no valid items")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrTrackingRequired   = errors.New("trackingNo required")
	ErrNotAwaitingPayment = errors.New("order is not awaiting payment")
)
