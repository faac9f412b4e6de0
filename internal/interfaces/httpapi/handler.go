package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/northcourt/club-api/internal/usecase"
)

type Handler struct {
	authService     *usecase.AuthService
	regService      *usecase.RegistrationService
	checkoutService *usecase.CheckoutService
	paymentsView    *usecase.PaymentsViewService
	contactService  *usecase.ContactService
	teamService     *usecase.TeamService
	programService  *usecase.ProgramService
	contentService  *usecase.ContentService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	regService *usecase.RegistrationService,
	checkoutService *usecase.CheckoutService,
	paymentsView *usecase.PaymentsViewService,
	contactService *usecase.ContactService,
	teamService *usecase.TeamService,
	programService *usecase.ProgramService,
	contentService *usecase.ContentService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		authService:     authService,
		regService:      regService,
		checkoutService: checkoutService,
		paymentsView:    paymentsView,
		contactService:  contactService,
		teamService:     teamService,
		programService:  programService,
		contentService:  contentService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
