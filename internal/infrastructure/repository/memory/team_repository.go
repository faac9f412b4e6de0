package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/northcourt/club-api/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[string]team.Team)}
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pairExists(item.Gender, item.AgeGroup, "") {
		return team.ErrDuplicate
	}
	r.items[item.ID] = item

	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]

	return item, ok, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}

	return out, nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return false, nil
	}
	if r.pairExists(item.Gender, item.AgeGroup, item.ID) {
		return false, team.ErrDuplicate
	}
	r.items[item.ID] = item

	return true, nil
}

func (r *TeamRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}

func (r *TeamRepository) pairExists(gender, ageGroup, excludeID string) bool {
	for _, item := range r.items {
		if item.ID == excludeID {
			continue
		}
		if strings.EqualFold(item.Gender, gender) && strings.EqualFold(item.AgeGroup, ageGroup) {
			return true
		}
	}
	return false
}
