package program

import "context"

type Repository interface {
	Create(ctx context.Context, item Program) error
	GetByID(ctx context.Context, id string) (Program, bool, error)
	List(ctx context.Context) ([]Program, error)
	Update(ctx context.Context, item Program) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
