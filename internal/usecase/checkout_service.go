package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/northcourt/club-api/internal/domain/content"
	"github.com/northcourt/club-api/internal/domain/order"
	"github.com/northcourt/club-api/internal/domain/program"
	"github.com/northcourt/club-api/internal/domain/registration"
	idgen "github.com/northcourt/club-api/internal/platform/id"
	"github.com/northcourt/club-api/internal/platform/money"
)

type ChargeRegistrationInput struct {
	RegistrationID string
	// Amount is an optional major-unit override ("12.34"); empty means
	// the program price.
	Amount    string
	CardToken string
	Card      *GatewayCard
	SaveCard  bool
}

type ChargeMerchandiseInput struct {
	ItemID        string
	CustomerName  string
	CustomerEmail string
	CardToken     string
	Card          *GatewayCard
}

// CheckoutService orchestrates card charges. Retrying a failed charge
// is the caller's decision; this layer never retries because the
// gateway does not guarantee idempotent charge semantics.
type CheckoutService struct {
	gateway     PaymentGateway
	regService  *RegistrationService
	programRepo program.Repository
	contentRepo content.Repository
	orderRepo   order.Repository
	idGen       idgen.Generator
	logger      *slog.Logger
	currency    string
	now         func() time.Time
}

func NewCheckoutService(
	gateway PaymentGateway,
	regService *RegistrationService,
	programRepo program.Repository,
	contentRepo content.Repository,
	orderRepo order.Repository,
	idGen idgen.Generator,
	currency string,
	logger *slog.Logger,
) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	if currency == "" {
		currency = "CAD"
	}

	return &CheckoutService{
		gateway:     gateway,
		regService:  regService,
		programRepo: programRepo,
		contentRepo: contentRepo,
		orderRepo:   orderRepo,
		idGen:       idGen,
		logger:      logger,
		currency:    currency,
		now:         time.Now,
	}
}

// ChargeRegistration charges the card and, on approval, reconciles the
// payment against the registration. A declined charge creates no
// Payment row and surfaces its reason.
func (s *CheckoutService) ChargeRegistration(ctx context.Context, input ChargeRegistrationInput) (registration.Registration, error) {
	ctx, span := startSpan(ctx, "usecase.CheckoutService.ChargeRegistration")
	defer span.End()

	if s.gateway == nil {
		return registration.Registration{}, fmt.Errorf("%w: card payments are not configured", ErrGatewayUnavailable)
	}

	item, err := s.regService.Get(ctx, input.RegistrationID)
	if err != nil {
		return registration.Registration{}, err
	}
	if item.PaymentStatus == registration.PaymentStatusPaid {
		// Already reconciled; never charge the card twice.
		return item, nil
	}

	amountCents, err := s.registrationAmount(ctx, item.ProgramID, input.Amount)
	if err != nil {
		return registration.Registration{}, err
	}

	result, err := s.gateway.Charge(ctx, GatewayChargeInput{
		AmountCents:   amountCents,
		Currency:      s.currency,
		CardToken:     input.CardToken,
		Card:          input.Card,
		CustomerName:  item.ParentName,
		CustomerEmail: item.Email,
		SaveCard:      input.SaveCard,
	})
	if err != nil {
		return registration.Registration{}, err
	}
	if result.Status == GatewayDeclined {
		return registration.Registration{}, &DeclinedError{Reason: result.DeclineReason}
	}

	return s.regService.ConfirmPayment(ctx, item.ID, result.TransactionID, amountCents, result.Raw)
}

// ChargeMerchandise charges the card for a catalog item and records the
// purchase as an Order carrying the gateway's payment reference.
func (s *CheckoutService) ChargeMerchandise(ctx context.Context, input ChargeMerchandiseInput) (order.Order, error) {
	ctx, span := startSpan(ctx, "usecase.CheckoutService.ChargeMerchandise")
	defer span.End()

	if s.gateway == nil {
		return order.Order{}, fmt.Errorf("%w: card payments are not configured", ErrGatewayUnavailable)
	}

	input.ItemID = strings.TrimSpace(input.ItemID)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	if input.ItemID == "" {
		return order.Order{}, fmt.Errorf("%w: item id is required", ErrInvalidInput)
	}
	if input.CustomerEmail == "" {
		return order.Order{}, fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}

	item, exists, err := s.contentRepo.GetMerchByID(ctx, input.ItemID)
	if err != nil {
		return order.Order{}, fmt.Errorf("get merch item: %w", err)
	}
	if !exists || !item.Active {
		return order.Order{}, fmt.Errorf("%w: merch item=%s", ErrNotFound, input.ItemID)
	}

	result, err := s.gateway.Charge(ctx, GatewayChargeInput{
		AmountCents:   item.PriceCents,
		Currency:      s.currency,
		CardToken:     input.CardToken,
		Card:          input.Card,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
	})
	if err != nil {
		return order.Order{}, err
	}
	if result.Status == GatewayDeclined {
		return order.Order{}, &DeclinedError{Reason: result.DeclineReason}
	}

	orderID, err := s.idGen.NewID()
	if err != nil {
		return order.Order{}, fmt.Errorf("generate order id: %w", err)
	}

	record := order.Order{
		ID:            orderID,
		ItemID:        item.ID,
		AmountCents:   item.PriceCents,
		Currency:      s.currency,
		Status:        "paid",
		PaymentRef:    result.TransactionID,
		CustomerEmail: input.CustomerEmail,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CreatedAt:     s.now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return order.Order{}, fmt.Errorf("validate order: %w", err)
	}

	if err := s.orderRepo.Create(ctx, record); err != nil {
		return order.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.logger.InfoContext(ctx, "merchandise order created",
		"order_id", record.ID,
		"item_id", record.ItemID,
		"amount_cents", record.AmountCents,
	)

	return record, nil
}

func (s *CheckoutService) TokenizeCard(ctx context.Context, card GatewayCard, customerEmail string) (GatewayResult, error) {
	if s.gateway == nil {
		return GatewayResult{}, fmt.Errorf("%w: card payments are not configured", ErrGatewayUnavailable)
	}

	result, err := s.gateway.TokenizeCard(ctx, card, customerEmail)
	if err != nil {
		return GatewayResult{}, err
	}
	if result.Status == GatewayDeclined {
		return GatewayResult{}, &DeclinedError{Reason: result.DeclineReason}
	}

	return result, nil
}

func (s *CheckoutService) ListSavedCards(ctx context.Context, customerEmail string) ([]GatewaySavedCard, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: card payments are not configured", ErrGatewayUnavailable)
	}

	return s.gateway.ListSavedCards(ctx, customerEmail)
}

func (s *CheckoutService) DeleteSavedCard(ctx context.Context, cardToken string) error {
	if s.gateway == nil {
		return fmt.Errorf("%w: card payments are not configured", ErrGatewayUnavailable)
	}

	return s.gateway.DeleteSavedCard(ctx, cardToken)
}

func (s *CheckoutService) registrationAmount(ctx context.Context, programID, override string) (int64, error) {
	if strings.TrimSpace(override) != "" {
		amountCents, err := money.ParseMajor(override)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return amountCents, nil
	}

	selectedProgram, exists, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return 0, fmt.Errorf("get program for amount: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: program=%s", ErrNotFound, programID)
	}

	return selectedProgram.PriceCents, nil
}
