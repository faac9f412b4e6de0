package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/northcourt/club-api/internal/domain/order"
	"github.com/northcourt/club-api/internal/domain/payment"
	"github.com/northcourt/club-api/internal/infrastructure/repository/memory"
)

type failingPaymentRepo struct{}

func (failingPaymentRepo) Create(_ context.Context, _ payment.Payment) error {
	return errors.New("db down")
}

func (failingPaymentRepo) List(_ context.Context) ([]payment.Payment, error) {
	return nil, errors.New("db down")
}

func (failingPaymentRepo) GetByRegistrationID(_ context.Context, _ string) (payment.Payment, bool, error) {
	return payment.Payment{}, false, errors.New("db down")
}

func TestPaymentsViewService_List(t *testing.T) {
	paymentRepo := memory.NewPaymentRepository()
	orderRepo := memory.NewOrderRepository()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := paymentRepo.Create(t.Context(), payment.Payment{
		ID:             "pay-1",
		AmountCents:    25000,
		Currency:       "CAD",
		Status:         "completed",
		Type:           payment.TypeRegistration,
		CustomerEmail:  "jane@example.com",
		TransactionRef: "txn-1",
		RegistrationID: "reg-1",
		CreatedAt:      base,
	}); err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	if err := orderRepo.Create(t.Context(), order.Order{
		ID:          "ord-1",
		ItemID:      "merch-hoodie",
		AmountCents: 4500,
		Currency:    "CAD",
		Status:      "paid",
		PaymentRef:  "txn-2",
		CreatedAt:   base.Add(time.Hour),
	}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	service := NewPaymentsViewService(paymentRepo, orderRepo, discardLogger())
	views := service.List(t.Context())

	if len(views) != 2 {
		t.Fatalf("expected two rows, got %d", len(views))
	}
	// Newest first, regardless of source.
	if views[0].ID != "ord-1" || views[0].Kind != "order" {
		t.Fatalf("expected the order first, got %s/%s", views[0].ID, views[0].Kind)
	}
	if views[1].ID != "pay-1" || views[1].Kind != "payment" {
		t.Fatalf("expected the payment second, got %s/%s", views[1].ID, views[1].Kind)
	}
	if views[0].Amount != "45.00" {
		t.Fatalf("expected major-unit amount 45.00, got %s", views[0].Amount)
	}
	if views[1].RegistrationID != "reg-1" {
		t.Fatalf("payment row lost its registration id: %s", views[1].RegistrationID)
	}
}

func TestPaymentsViewService_ListDegradesToEmpty(t *testing.T) {
	service := NewPaymentsViewService(failingPaymentRepo{}, memory.NewOrderRepository(), discardLogger())

	views := service.List(t.Context())
	if views == nil {
		t.Fatal("degraded list must be empty, not nil")
	}
	if len(views) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(views))
	}
}
