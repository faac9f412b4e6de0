package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/northcourt/club-api/internal/domain/order"
	"github.com/northcourt/club-api/internal/platform/money"
	"github.com/northcourt/club-api/internal/usecase"
)

type cardRequest struct {
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVV    string `json:"cvv"`
}

// chargeRequest covers both charge kinds: registrationId for program
// fees, itemId for merchandise. Exactly one of the two must be set.
type chargeRequest struct {
	RegistrationID string       `json:"registrationId"`
	ItemID         string       `json:"itemId"`
	Amount         string       `json:"amount"`
	CardToken      string       `json:"cardToken"`
	Card           *cardRequest `json:"card"`
	SaveCard       bool         `json:"saveCard"`
	CustomerName   string       `json:"customerName"`
	CustomerEmail  string       `json:"customerEmail"`
}

type orderDTO struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentRef    string    `json:"paymentRef,omitempty"`
	CustomerName  string    `json:"customerName,omitempty"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func orderToDTO(item order.Order) orderDTO {
	return orderDTO{
		ID:            item.ID,
		ItemID:        item.ItemID,
		Amount:        money.FormatMajor(item.AmountCents),
		Currency:      item.Currency,
		Status:        item.Status,
		PaymentRef:    item.PaymentRef,
		CustomerName:  item.CustomerName,
		CustomerEmail: item.CustomerEmail,
		CreatedAt:     item.CreatedAt,
	}
}

func (h *Handler) Charge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Charge")
	defer span.End()

	var req chargeRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	req.RegistrationID = strings.TrimSpace(req.RegistrationID)
	req.ItemID = strings.TrimSpace(req.ItemID)

	switch {
	case req.RegistrationID != "" && req.ItemID != "":
		writeError(ctx, w, fmt.Errorf("%w: registrationId and itemId are mutually exclusive", usecase.ErrInvalidInput))
		return
	case req.RegistrationID != "":
		item, err := h.checkoutService.ChargeRegistration(ctx, usecase.ChargeRegistrationInput{
			RegistrationID: req.RegistrationID,
			Amount:         req.Amount,
			CardToken:      req.CardToken,
			Card:           gatewayCard(req.Card),
			SaveCard:       req.SaveCard,
		})
		if err != nil {
			h.logger.WarnContext(ctx, "registration charge failed", "registration_id", req.RegistrationID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, registrationToDTO(item))
	case req.ItemID != "":
		placed, err := h.checkoutService.ChargeMerchandise(ctx, usecase.ChargeMerchandiseInput{
			ItemID:        req.ItemID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CardToken:     req.CardToken,
			Card:          gatewayCard(req.Card),
		})
		if err != nil {
			h.logger.WarnContext(ctx, "merchandise charge failed", "item_id", req.ItemID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, orderToDTO(placed))
	default:
		writeError(ctx, w, fmt.Errorf("%w: registrationId or itemId is required", usecase.ErrInvalidInput))
	}
}

// ListPayments degrades to an empty list on store failure; the payments
// view logs the cause.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPayments")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, h.paymentsView.List(ctx))
}

type tokenizeCardRequest struct {
	Card          cardRequest `json:"card" validate:"required"`
	CustomerEmail string      `json:"customerEmail" validate:"required,email"`
}

type savedCardDTO struct {
	Token string `json:"token"`
}

func (h *Handler) TokenizeCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TokenizeCard")
	defer span.End()

	var req tokenizeCardRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.checkoutService.TokenizeCard(ctx, usecase.GatewayCard{
		Number: req.Card.Number,
		Expiry: req.Card.Expiry,
		CVV:    req.Card.CVV,
	}, req.CustomerEmail)
	if err != nil {
		h.logger.WarnContext(ctx, "card tokenize failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, savedCardDTO{Token: result.CardToken})
}

func (h *Handler) ListSavedCards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSavedCards")
	defer span.End()

	customerEmail := strings.TrimSpace(r.URL.Query().Get("customerEmail"))
	if customerEmail == "" {
		writeError(ctx, w, fmt.Errorf("%w: customerEmail query parameter is required", usecase.ErrInvalidInput))
		return
	}

	cards, err := h.checkoutService.ListSavedCards(ctx, customerEmail)
	if err != nil {
		h.logger.WarnContext(ctx, "list saved cards failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if cards == nil {
		cards = []usecase.GatewaySavedCard{}
	}

	writeJSON(ctx, w, http.StatusOK, cards)
}

func (h *Handler) DeleteSavedCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSavedCard")
	defer span.End()

	cardToken := r.PathValue("token")
	if err := h.checkoutService.DeleteSavedCard(ctx, cardToken); err != nil {
		h.logger.WarnContext(ctx, "delete saved card failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func gatewayCard(card *cardRequest) *usecase.GatewayCard {
	if card == nil {
		return nil
	}
	return &usecase.GatewayCard{
		Number: card.Number,
		Expiry: card.Expiry,
		CVV:    card.CVV,
	}
}
