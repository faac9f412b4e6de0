package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/northcourt/club-api/internal/domain/program"
	"github.com/northcourt/club-api/internal/domain/team"
	"github.com/northcourt/club-api/internal/platform/money"
	"github.com/northcourt/club-api/internal/usecase"
)

type teamRequest struct {
	Gender   string `json:"gender" validate:"required"`
	AgeGroup string `json:"ageGroup" validate:"required"`
}

type teamDTO struct {
	ID        string    `json:"id"`
	Gender    string    `json:"gender"`
	AgeGroup  string    `json:"ageGroup"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{
		ID:        item.ID,
		Gender:    item.Gender,
		AgeGroup:  item.AgeGroup,
		Label:     item.Label(),
		CreatedAt: item.CreatedAt,
	}
}

type programRequest struct {
	Name   string `json:"name" validate:"required"`
	Season string `json:"season" validate:"required"`
	Price  string `json:"price" validate:"required"`
}

type programDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Season    string    `json:"season"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

func programToDTO(item program.Program) programDTO {
	return programDTO{
		ID:        item.ID,
		Name:      item.Name,
		Season:    item.Season,
		Price:     money.FormatMajor(item.PriceCents),
		CreatedAt: item.CreatedAt,
	}
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	req, err := decodeTeamRequest(h, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.TeamInput{Gender: req.Gender, AgeGroup: req.AgeGroup})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	req, err := decodeTeamRequest(h, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, r.PathValue("id"), usecase.TeamInput{Gender: req.Gender, AgeGroup: req.AgeGroup})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	if err := h.teamService.Delete(ctx, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPrograms")
	defer span.End()

	items, err := h.programService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list programs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]programDTO, 0, len(items))
	for _, item := range items {
		out = append(out, programToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateProgram")
	defer span.End()

	req, err := decodeProgramRequest(h, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.programService.Create(ctx, usecase.ProgramInput{Name: req.Name, Season: req.Season, Price: req.Price})
	if err != nil {
		h.logger.WarnContext(ctx, "create program failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, programToDTO(item))
}

func (h *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateProgram")
	defer span.End()

	req, err := decodeProgramRequest(h, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.programService.Update(ctx, r.PathValue("id"), usecase.ProgramInput{Name: req.Name, Season: req.Season, Price: req.Price})
	if err != nil {
		h.logger.WarnContext(ctx, "update program failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, programToDTO(item))
}

func (h *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteProgram")
	defer span.End()

	if err := h.programService.Delete(ctx, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeTeamRequest(h *Handler, r *http.Request) (teamRequest, error) {
	var req teamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return teamRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return teamRequest{}, err
	}
	return req, nil
}

func decodeProgramRequest(h *Handler, r *http.Request) (programRequest, error) {
	var req programRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return programRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return programRequest{}, err
	}
	return req, nil
}
