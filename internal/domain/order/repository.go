package order

import "context"

type Repository interface {
	Create(ctx context.Context, item Order) error
	List(ctx context.Context) ([]Order, error)
}
