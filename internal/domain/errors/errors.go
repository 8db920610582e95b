package errors

import "errors"

var (
	ErrAlreadyExists             = errors.New("already exists")
	ErrNotFound                  = errors.New("not found")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrMissingParameter          = errors.New("missing required parameter")
	ErrMissingRequiredField      = errors.New("missing required order field")
	ErrInvalidStatus             = errors.New("invalid order status")
	ErrInvalidTransition         = errors.New("illegal order status transition")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrGatewayUnavailable        = errors.New("payment gateway unavailable")
	ErrGatewayRejected           = errors.New("payment gateway rejected request")
	ErrForbidden                 = errors.New("insufficient permissions")
	ErrInvalidCode               = errors.New("invalid or expired verification code")
)
