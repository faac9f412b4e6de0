package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/northcourt/club-api/internal/domain/registration"
	"github.com/northcourt/club-api/internal/usecase"
)

// maxWaiverBytes caps waiver uploads at 10 MiB.
const maxWaiverBytes = 10 << 20

type registerRequest struct {
	PlayerName     string `json:"playerName" validate:"required"`
	ParentName     string `json:"parentName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	TeamID         string `json:"teamId" validate:"required"`
	ProgramID      string `json:"programId" validate:"required"`
	WaiverAccepted bool   `json:"waiverAccepted"`
	ETransferNote  string `json:"eTransferNote"`
}

type updateRegistrationRequest struct {
	PlayerName     *string `json:"playerName"`
	ParentName     *string `json:"parentName"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone"`
	WaiverAccepted *bool   `json:"waiverAccepted"`
	ETransferNote  *string `json:"eTransferNote"`
	TeamID         *string `json:"teamId"`
	ProgramID      *string `json:"programId"`
}

type registrationDTO struct {
	ID             string    `json:"id"`
	PlayerName     string    `json:"playerName"`
	ParentName     string    `json:"parentName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	WaiverAccepted bool      `json:"waiverAccepted"`
	WaiverURL      string    `json:"waiverUrl,omitempty"`
	ETransferNote  string    `json:"eTransferNote,omitempty"`
	PaymentStatus  string    `json:"paymentStatus"`
	TeamID         string    `json:"teamId"`
	ProgramID      string    `json:"programId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type waiverUploadResponse struct {
	Message      string          `json:"message"`
	URL          string          `json:"url"`
	Registration registrationDTO `json:"registration"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func registrationToDTO(item registration.Registration) registrationDTO {
	return registrationDTO{
		ID:             item.ID,
		PlayerName:     item.PlayerName,
		ParentName:     item.ParentName,
		Email:          item.Email,
		Phone:          item.Phone,
		WaiverAccepted: item.WaiverAccepted,
		WaiverURL:      item.WaiverURL,
		ETransferNote:  item.ETransferNote,
		PaymentStatus:  string(item.PaymentStatus),
		TeamID:         item.TeamID,
		ProgramID:      item.ProgramID,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req registerRequest
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

	item, err := h.regService.Submit(ctx, usecase.SubmitRegistrationInput{
		PlayerName:     req.PlayerName,
		ParentName:     req.ParentName,
		Email:          req.Email,
		Phone:          req.Phone,
		TeamID:         req.TeamID,
		ProgramID:      req.ProgramID,
		WaiverAccepted: req.WaiverAccepted,
		ETransferNote:  req.ETransferNote,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "registration submit failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, registrationToDTO(item))
}

// UploadWaiver accepts a multipart form with a "file" part and a
// "registrationId" field.
func (h *Handler) UploadWaiver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadWaiver")
	defer span.End()

	if err := r.ParseMultipartForm(maxWaiverBytes); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err))
		return
	}

	registrationID := strings.TrimSpace(r.FormValue("registrationId"))
	if registrationID == "" {
		writeError(ctx, w, fmt.Errorf("%w: registrationId is required", usecase.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: file part is required", usecase.ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxWaiverBytes+1))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read file: %v", usecase.ErrInvalidInput, err))
		return
	}
	if len(data) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: file is empty", usecase.ErrInvalidInput))
		return
	}
	if len(data) > maxWaiverBytes {
		writeError(ctx, w, fmt.Errorf("%w: file exceeds %d bytes", usecase.ErrInvalidInput, maxWaiverBytes))
		return
	}

	item, err := h.regService.AttachWaiver(ctx, registrationID, usecase.WaiverFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "waiver upload failed", "registration_id", registrationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, waiverUploadResponse{
		Message:      "waiver uploaded",
		URL:          item.WaiverURL,
		Registration: registrationToDTO(item),
	})
}

func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRegistrations")
	defer span.End()

	items, err := h.regService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list registrations failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]registrationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, registrationToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRegistration")
	defer span.End()

	id := r.PathValue("id")

	var req updateRegistrationRequest
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

	item, err := h.regService.Update(ctx, id, registration.Patch{
		PlayerName:     req.PlayerName,
		ParentName:     req.ParentName,
		Email:          req.Email,
		Phone:          req.Phone,
		WaiverAccepted: req.WaiverAccepted,
		ETransferNote:  req.ETransferNote,
		TeamID:         req.TeamID,
		ProgramID:      req.ProgramID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update registration failed", "registration_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, registrationToDTO(item))
}

func (h *Handler) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRegistration")
	defer span.End()

	id := r.PathValue("id")
	if err := h.regService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete registration failed", "registration_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "registration deleted"})
}
