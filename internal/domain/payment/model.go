package payment

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeRegistration Type = "registration"
	TypeMerchandise  Type = "merchandise"
)

// Payment is a record of a completed charge. At most one Payment links
// to any Registration; merchandise payments carry no registration.
type Payment struct {
	ID             string
	AmountCents    int64
	Currency       string
	Status         string
	Type           Type
	CustomerEmail  string
	CustomerName   string
	TransactionRef string
	// Metadata is the raw gateway response blob, kept opaque.
	Metadata       []byte
	RegistrationID string
	CreatedAt      time.Time
}

// ErrRegistrationAlreadyPaid marks an insert that hit the unique
// registration_id constraint, the backstop against double confirmation.
var ErrRegistrationAlreadyPaid = fmt.Errorf("registration already has a payment")

func (p Payment) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("payment id is required")
	}
	if p.AmountCents <= 0 {
		return fmt.Errorf("payment amount must be positive minor units")
	}
	if p.Currency == "" {
		return fmt.Errorf("payment currency is required")
	}
	switch p.Type {
	case TypeRegistration, TypeMerchandise:
	default:
		return fmt.Errorf("invalid payment type %q", p.Type)
	}
	if p.Type == TypeRegistration && p.RegistrationID == "" {
		return fmt.Errorf("registration payment requires a registration id")
	}

	return nil
}
