package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/northcourt/club-api/internal/domain/order"
	"github.com/northcourt/club-api/internal/domain/payment"
	"github.com/northcourt/club-api/internal/platform/money"
)

const (
	paymentKindPayment = "payment"
	paymentKindOrder   = "order"
)

// PaymentView is one row of the admin payments screen, merging
// registration payments and merchandise orders into a single shape.
type PaymentView struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	Type           string    `json:"type"`
	Amount         string    `json:"amount"`
	AmountCents    int64     `json:"amountCents"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	CustomerName   string    `json:"customerName,omitempty"`
	CustomerEmail  string    `json:"customerEmail,omitempty"`
	Reference      string    `json:"reference,omitempty"`
	RegistrationID string    `json:"registrationId,omitempty"`
	ItemID         string    `json:"itemId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type PaymentsViewService struct {
	paymentRepo payment.Repository
	orderRepo   order.Repository
	logger      *slog.Logger
}

func NewPaymentsViewService(paymentRepo payment.Repository, orderRepo order.Repository, logger *slog.Logger) *PaymentsViewService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PaymentsViewService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// List fetches payments and orders concurrently and merges them newest
// first. The admin screen is a dashboard, not a ledger of record, so a
// failed fetch degrades to an empty list instead of an error page.
func (s *PaymentsViewService) List(ctx context.Context) []PaymentView {
	ctx, span := startSpan(ctx, "usecase.PaymentsViewService.List")
	defer span.End()

	var (
		payments    []payment.Payment
		orders      []order.Order
		paymentsErr error
		ordersErr   error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		payments, paymentsErr = s.paymentRepo.List(ctx)
	})
	wg.Go(func() {
		orders, ordersErr = s.orderRepo.List(ctx)
	})
	wg.Wait()

	if paymentsErr != nil {
		s.logger.ErrorContext(ctx, "payments view degraded to empty", "error", paymentsErr)
		return []PaymentView{}
	}
	if ordersErr != nil {
		s.logger.ErrorContext(ctx, "payments view degraded to empty", "error", ordersErr)
		return []PaymentView{}
	}

	views := make([]PaymentView, 0, len(payments)+len(orders))
	for _, item := range payments {
		views = append(views, PaymentView{
			ID:             item.ID,
			Kind:           paymentKindPayment,
			Type:           string(item.Type),
			Amount:         money.FormatMajor(item.AmountCents),
			AmountCents:    item.AmountCents,
			Currency:       item.Currency,
			Status:         item.Status,
			CustomerName:   item.CustomerName,
			CustomerEmail:  item.CustomerEmail,
			Reference:      item.TransactionRef,
			RegistrationID: item.RegistrationID,
			CreatedAt:      item.CreatedAt,
		})
	}
	for _, item := range orders {
		views = append(views, PaymentView{
			ID:            item.ID,
			Kind:          paymentKindOrder,
			Type:          "merchandise",
			Amount:        money.FormatMajor(item.AmountCents),
			AmountCents:   item.AmountCents,
			Currency:      item.Currency,
			Status:        item.Status,
			CustomerName:  item.CustomerName,
			CustomerEmail: item.CustomerEmail,
			Reference:     item.PaymentRef,
			ItemID:        item.ItemID,
			CreatedAt:     item.CreatedAt,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})

	return views
}
