package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/northcourt/club-api/internal/domain/registration"
)

type RegistrationRepository struct {
	mu    sync.RWMutex
	items map[string]registration.Registration
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{items: make(map[string]registration.Registration)}
}

func (r *RegistrationRepository) Create(_ context.Context, item registration.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item

	return nil
}

func (r *RegistrationRepository) GetByID(_ context.Context, id string) (registration.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]

	return item, ok, nil
}

func (r *RegistrationRepository) List(_ context.Context) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Registration, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *RegistrationRepository) Update(_ context.Context, id string, patch registration.Patch) (registration.Registration, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return registration.Registration{}, false, nil
	}

	if patch.PlayerName != nil {
		item.PlayerName = *patch.PlayerName
	}
	if patch.ParentName != nil {
		item.ParentName = *patch.ParentName
	}
	if patch.Email != nil {
		item.Email = *patch.Email
	}
	if patch.Phone != nil {
		item.Phone = *patch.Phone
	}
	if patch.WaiverAccepted != nil {
		item.WaiverAccepted = *patch.WaiverAccepted
	}
	if patch.ETransferNote != nil {
		item.ETransferNote = *patch.ETransferNote
	}
	if patch.TeamID != nil {
		item.TeamID = *patch.TeamID
	}
	if patch.ProgramID != nil {
		item.ProgramID = *patch.ProgramID
	}
	r.items[id] = item

	return item, true, nil
}

func (r *RegistrationRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}

func (r *RegistrationRepository) SetWaiverURL(_ context.Context, id, url string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return false, nil
	}
	item.WaiverURL = url
	r.items[id] = item

	return true, nil
}

func (r *RegistrationRepository) MarkPaid(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.PaymentStatus != registration.PaymentStatusUnpaid {
		return false, nil
	}
	item.PaymentStatus = registration.PaymentStatusPaid
	r.items[id] = item

	return true, nil
}
