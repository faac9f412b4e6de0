package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/northcourt/club-api/internal/domain/order"
)

type OrderRepository struct {
	mu    sync.RWMutex
	items map[string]order.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{items: make(map[string]order.Order)}
}

func (r *OrderRepository) Create(_ context.Context, item order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item

	return nil
}

func (r *OrderRepository) List(_ context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]order.Order, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
