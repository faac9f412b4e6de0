package payment

import "context"

type Repository interface {
	Create(ctx context.Context, item Payment) error
	List(ctx context.Context) ([]Payment, error)
	GetByRegistrationID(ctx context.Context, registrationID string) (Payment, bool, error)
}
