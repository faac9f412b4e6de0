package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/northcourt/club-api/internal/domain/contact"
)

type ContactRepository struct {
	mu    sync.RWMutex
	items map[string]contact.Message
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{items: make(map[string]contact.Message)}
}

func (r *ContactRepository) Create(_ context.Context, item contact.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item

	return nil
}

func (r *ContactRepository) List(_ context.Context) ([]contact.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contact.Message, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *ContactRepository) MarkRead(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return false, nil
	}
	item.IsRead = true
	r.items[id] = item

	return true, nil
}

func (r *ContactRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}
