package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/northcourt/club-api/internal/domain/contact"
	"github.com/northcourt/club-api/internal/usecase"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

type contactDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type contactSubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

func contactToDTO(item contact.Message) contactDTO {
	return contactDTO{
		ID:        item.ID,
		Name:      item.Name,
		Email:     item.Email,
		Phone:     item.Phone,
		Message:   item.Message,
		IsRead:    item.IsRead,
		CreatedAt: item.CreatedAt,
	}
}

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitContact")
	defer span.End()

	var req contactRequest
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

	item, err := h.contactService.Submit(ctx, usecase.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "contact submit failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, contactSubmitResponse{
		Success: true,
		Message: "message received",
		ID:      item.ID,
	})
}

func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContactMessages")
	defer span.End()

	items, err := h.contactService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list contact messages failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]contactDTO, 0, len(items))
	for _, item := range items {
		out = append(out, contactToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) MarkContactMessageRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkContactMessageRead")
	defer span.End()

	id := r.PathValue("id")
	if err := h.contactService.MarkRead(ctx, id); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteContactMessage")
	defer span.End()

	id := r.PathValue("id")
	if err := h.contactService.Delete(ctx, id); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
