package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/northcourt/club-api/internal/domain/payment"
)

type PaymentRepository struct {
	mu    sync.RWMutex
	items map[string]payment.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{items: make(map[string]payment.Payment)}
}

// Create enforces the at-most-one-payment-per-registration rule the
// database backs with a unique index.
func (r *PaymentRepository) Create(_ context.Context, item payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.RegistrationID != "" {
		for _, existing := range r.items {
			if existing.RegistrationID == item.RegistrationID {
				return payment.ErrRegistrationAlreadyPaid
			}
		}
	}
	r.items[item.ID] = item

	return nil
}

func (r *PaymentRepository) List(_ context.Context) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Payment, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *PaymentRepository) GetByRegistrationID(_ context.Context, registrationID string) (payment.Payment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.RegistrationID == registrationID {
			return item, true, nil
		}
	}

	return payment.Payment{}, false, nil
}
