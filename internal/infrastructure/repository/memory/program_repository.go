package memory

import (
	"context"
	"sync"

	"github.com/northcourt/club-api/internal/domain/program"
)

type ProgramRepository struct {
	mu    sync.RWMutex
	items map[string]program.Program
}

func NewProgramRepository() *ProgramRepository {
	return &ProgramRepository{items: make(map[string]program.Program)}
}

func (r *ProgramRepository) Create(_ context.Context, item program.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item

	return nil
}

func (r *ProgramRepository) GetByID(_ context.Context, id string) (program.Program, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]

	return item, ok, nil
}

func (r *ProgramRepository) List(_ context.Context) ([]program.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]program.Program, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}

	return out, nil
}

func (r *ProgramRepository) Update(_ context.Context, item program.Program) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return false, nil
	}
	r.items[item.ID] = item

	return true, nil
}

func (r *ProgramRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}
