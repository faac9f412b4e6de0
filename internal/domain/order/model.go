package order

import (
	"fmt"
	"time"
)

// Order is a merchandise purchase, distinct from Payment; both feed the
// unified admin payments view.
type Order struct {
	ID            string
	ItemID        string
	AmountCents   int64
	Currency      string
	Status        string
	PaymentRef    string
	CustomerEmail string
	CustomerName  string
	CreatedAt     time.Time
}

func (o Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id is required")
	}
	if o.ItemID == "" {
		return fmt.Errorf("order item id is required")
	}
	if o.AmountCents <= 0 {
		return fmt.Errorf("order amount must be positive minor units")
	}
	if o.Currency == "" {
		return fmt.Errorf("order currency is required")
	}

	return nil
}
