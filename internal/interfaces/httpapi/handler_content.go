package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/northcourt/club-api/internal/domain/content"
	"github.com/northcourt/club-api/internal/platform/money"
	"github.com/northcourt/club-api/internal/usecase"
)

type newsRequest struct {
	Title       string    `json:"title" validate:"required"`
	Body        string    `json:"body" validate:"required"`
	PublishedAt time.Time `json:"publishedAt"`
}

type newsDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type mediaRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Kind  string `json:"kind"`
}

type mediaDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

type merchRequest struct {
	Name     string `json:"name" validate:"required"`
	Price    string `json:"price" validate:"required"`
	ImageURL string `json:"imageUrl"`
	Active   bool   `json:"active"`
}

type merchDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func newsToDTO(item content.NewsPost) newsDTO {
	return newsDTO{
		ID:          item.ID,
		Title:       item.Title,
		Body:        item.Body,
		PublishedAt: item.PublishedAt,
		CreatedAt:   item.CreatedAt,
	}
}

func mediaToDTO(item content.MediaItem) mediaDTO {
	return mediaDTO{
		ID:        item.ID,
		Title:     item.Title,
		URL:       item.URL,
		Kind:      item.Kind,
		CreatedAt: item.CreatedAt,
	}
}

func merchToDTO(item content.MerchItem) merchDTO {
	return merchDTO{
		ID:        item.ID,
		Name:      item.Name,
		Price:     money.FormatMajor(item.PriceCents),
		ImageURL:  item.ImageURL,
		Active:    item.Active,
		CreatedAt: item.CreatedAt,
	}
}

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNews")
	defer span.End()

	items, err := h.contentService.ListNews(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]newsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, newsToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateNews")
	defer span.End()

	var req newsRequest
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

	item, err := h.contentService.CreateNews(ctx, usecase.NewsInput{
		Title:       req.Title,
		Body:        req.Body,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, newsToDTO(item))
}

func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteNews")
	defer span.End()

	if err := h.contentService.DeleteNews(ctx, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMedia")
	defer span.End()

	items, err := h.contentService.ListMedia(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list media failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]mediaDTO, 0, len(items))
	for _, item := range items {
		out = append(out, mediaToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMedia")
	defer span.End()

	var req mediaRequest
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

	item, err := h.contentService.CreateMedia(ctx, usecase.MediaInput{
		Title: req.Title,
		URL:   req.URL,
		Kind:  req.Kind,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create media failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, mediaToDTO(item))
}

func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMedia")
	defer span.End()

	if err := h.contentService.DeleteMedia(ctx, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMerch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMerch")
	defer span.End()

	items, err := h.contentService.ListMerch(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list merch failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]merchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, merchToDTO(item))
	}

	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateMerch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMerch")
	defer span.End()

	var req merchRequest
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

	item, err := h.contentService.CreateMerch(ctx, usecase.MerchInput{
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		Active:   req.Active,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create merch failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, merchToDTO(item))
}

func (h *Handler) DeleteMerch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMerch")
	defer span.End()

	if err := h.contentService.DeleteMerch(ctx, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
