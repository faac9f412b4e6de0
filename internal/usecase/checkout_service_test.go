package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/northcourt/club-api/internal/domain/content"
	"github.com/northcourt/club-api/internal/domain/registration"
	"github.com/northcourt/club-api/internal/infrastructure/repository/memory"
)

type scriptedGateway struct {
	result     GatewayResult
	err        error
	lastCharge GatewayChargeInput
	charges    int
}

func (g *scriptedGateway) Charge(_ context.Context, input GatewayChargeInput) (GatewayResult, error) {
	g.charges++
	g.lastCharge = input
	return g.result, g.err
}

func (g *scriptedGateway) TokenizeCard(_ context.Context, _ GatewayCard, _ string) (GatewayResult, error) {
	return g.result, g.err
}

func (g *scriptedGateway) ListSavedCards(_ context.Context, _ string) ([]GatewaySavedCard, error) {
	return nil, g.err
}

func (g *scriptedGateway) DeleteSavedCard(_ context.Context, _ string) error {
	return g.err
}

type checkoutFixture struct {
	registrationFixture
	service     *CheckoutService
	gateway     *scriptedGateway
	contentRepo *memory.ContentRepository
	orderRepo   *memory.OrderRepository
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()

	regFx := newRegistrationFixture(t)
	gateway := &scriptedGateway{result: GatewayResult{
		Status:        GatewayApproved,
		TransactionID: "txn-approved",
		ApprovalCode:  "OK0001",
	}}
	contentRepo := memory.NewContentRepository()
	orderRepo := memory.NewOrderRepository()

	programRepo := memory.NewProgramRepository()
	seeded, exists, err := regFx.service.programRepo.GetByID(t.Context(), "program-spring")
	if err != nil || !exists {
		t.Fatalf("fixture program missing, exists=%t err=%v", exists, err)
	}
	if err := programRepo.Create(t.Context(), seeded); err != nil {
		t.Fatalf("seed program: %v", err)
	}

	service := NewCheckoutService(
		gateway,
		regFx.service,
		programRepo,
		contentRepo,
		orderRepo,
		&seqIDGenerator{prefix: "order"},
		"CAD",
		discardLogger(),
	)

	return checkoutFixture{
		registrationFixture: regFx,
		service:             service,
		gateway:             gateway,
		contentRepo:         contentRepo,
		orderRepo:           orderRepo,
	}
}

func TestCheckoutService_ChargeRegistration(t *testing.T) {
	fx := newCheckoutFixture(t)

	item, err := fx.registrationFixture.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	confirmed, err := fx.service.ChargeRegistration(t.Context(), ChargeRegistrationInput{
		RegistrationID: item.ID,
		CardToken:      "card-token-1",
	})
	if err != nil {
		t.Fatalf("charge registration failed: %v", err)
	}
	if confirmed.PaymentStatus != registration.PaymentStatusPaid {
		t.Fatalf("expected paid status, got %s", confirmed.PaymentStatus)
	}
	if fx.gateway.lastCharge.AmountCents != 25000 {
		t.Fatalf("expected program price 25000, charged %d", fx.gateway.lastCharge.AmountCents)
	}
	if fx.gateway.lastCharge.CustomerEmail != "jane@example.com" {
		t.Fatalf("charge used wrong customer email: %s", fx.gateway.lastCharge.CustomerEmail)
	}

	payments, err := fx.paymentRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected one payment, got %d", len(payments))
	}
	if payments[0].TransactionRef != "txn-approved" {
		t.Fatalf("payment carries wrong reference: %s", payments[0].TransactionRef)
	}
}

func TestCheckoutService_ChargeRegistrationAmountOverride(t *testing.T) {
	fx := newCheckoutFixture(t)

	item, err := fx.registrationFixture.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = fx.service.ChargeRegistration(t.Context(), ChargeRegistrationInput{
		RegistrationID: item.ID,
		Amount:         "12.34",
		CardToken:      "card-token-1",
	})
	if err != nil {
		t.Fatalf("charge registration failed: %v", err)
	}
	if fx.gateway.lastCharge.AmountCents != 1234 {
		t.Fatalf("expected override amount 1234, charged %d", fx.gateway.lastCharge.AmountCents)
	}
}

func TestCheckoutService_ChargeRegistrationDeclined(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.gateway.result = GatewayResult{
		Status:        GatewayDeclined,
		DeclineReason: "insufficient funds",
	}

	item, err := fx.registrationFixture.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = fx.service.ChargeRegistration(t.Context(), ChargeRegistrationInput{
		RegistrationID: item.ID,
		CardToken:      "card-token-1",
	})
	var declined *DeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("expected DeclinedError, got %v", err)
	}
	if declined.Reason != "insufficient funds" {
		t.Fatalf("unexpected decline reason: %s", declined.Reason)
	}

	// A decline leaves no trace in payments and keeps the registration unpaid.
	payments, err := fx.paymentRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 0 {
		t.Fatalf("declined charge persisted %d payments", len(payments))
	}
	stored, _, err := fx.regRepo.GetByID(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	if stored.PaymentStatus != registration.PaymentStatusUnpaid {
		t.Fatalf("declined charge changed status to %s", stored.PaymentStatus)
	}
}

func TestCheckoutService_ChargeRegistrationAlreadyPaid(t *testing.T) {
	fx := newCheckoutFixture(t)

	item, err := fx.registrationFixture.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := fx.registrationFixture.service.ConfirmPayment(t.Context(), item.ID, "txn-manual", 0, nil); err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}

	confirmed, err := fx.service.ChargeRegistration(t.Context(), ChargeRegistrationInput{
		RegistrationID: item.ID,
		CardToken:      "card-token-1",
	})
	if err != nil {
		t.Fatalf("charge on paid registration failed: %v", err)
	}
	if confirmed.PaymentStatus != registration.PaymentStatusPaid {
		t.Fatalf("expected paid status, got %s", confirmed.PaymentStatus)
	}
	if fx.gateway.charges != 0 {
		t.Fatalf("paid registration must never reach the gateway, saw %d charges", fx.gateway.charges)
	}
}

func TestCheckoutService_ChargeMerchandise(t *testing.T) {
	fx := newCheckoutFixture(t)

	if err := fx.contentRepo.CreateMerch(t.Context(), content.MerchItem{
		ID:         "merch-hoodie",
		Name:       "Club Hoodie",
		PriceCents: 4500,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed merch: %v", err)
	}

	record, err := fx.service.ChargeMerchandise(t.Context(), ChargeMerchandiseInput{
		ItemID:        "merch-hoodie",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		CardToken:     "card-token-1",
	})
	if err != nil {
		t.Fatalf("charge merchandise failed: %v", err)
	}
	if record.Status != "paid" {
		t.Fatalf("expected paid order, got %s", record.Status)
	}
	if record.AmountCents != 4500 {
		t.Fatalf("expected catalog price 4500, got %d", record.AmountCents)
	}
	if record.PaymentRef != "txn-approved" {
		t.Fatalf("order carries wrong payment reference: %s", record.PaymentRef)
	}

	orders, err := fx.orderRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
}

func TestCheckoutService_ChargeMerchandiseInactiveItem(t *testing.T) {
	fx := newCheckoutFixture(t)

	if err := fx.contentRepo.CreateMerch(t.Context(), content.MerchItem{
		ID:         "merch-retired",
		Name:       "Retired Jersey",
		PriceCents: 9900,
		Active:     false,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed merch: %v", err)
	}

	_, err := fx.service.ChargeMerchandise(t.Context(), ChargeMerchandiseInput{
		ItemID:        "merch-retired",
		CustomerEmail: "jane@example.com",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive item, got %v", err)
	}
	if fx.gateway.charges != 0 {
		t.Fatalf("inactive item must not be charged, saw %d charges", fx.gateway.charges)
	}
}

func TestCheckoutService_GatewayNotConfigured(t *testing.T) {
	fx := newCheckoutFixture(t)
	service := NewCheckoutService(
		nil,
		fx.registrationFixture.service,
		memory.NewProgramRepository(),
		fx.contentRepo,
		fx.orderRepo,
		&seqIDGenerator{prefix: "order"},
		"CAD",
		discardLogger(),
	)

	_, err := service.ChargeRegistration(t.Context(), ChargeRegistrationInput{RegistrationID: "reg-1"})
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if _, err := service.ListSavedCards(t.Context(), "jane@example.com"); !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}
