package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUploadFailed       = errors.New("upload failed")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// DeclinedError is a terminal business decline from the payment
// gateway. The reason is user-facing ("insufficient funds") and callers
// must not retry the same attempt.
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Reason)
}
