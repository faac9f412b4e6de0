package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/northcourt/club-api/internal/domain/content"
	idgen "github.com/northcourt/club-api/internal/platform/id"
	"github.com/northcourt/club-api/internal/platform/money"
)

type NewsInput struct {
	Title       string
	Body        string
	PublishedAt time.Time
}

type MediaInput struct {
	Title string
	URL   string
	Kind  string
}

type MerchInput struct {
	Name     string
	Price    string
	ImageURL string
	Active   bool
}

// ContentService manages the public-site catalog: news, media and
// merchandise.
type ContentService struct {
	repo   content.Repository
	idGen  idgen.Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewContentService(repo content.Repository, idGen idgen.Generator, logger *slog.Logger) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ContentService{
		repo:   repo,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ContentService) ListNews(ctx context.Context) ([]content.NewsPost, error) {
	ctx, span := startSpan(ctx, "usecase.ContentService.ListNews")
	defer span.End()

	items, err := s.repo.ListNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	if items == nil {
		items = []content.NewsPost{}
	}

	return items, nil
}

func (s *ContentService) CreateNews(ctx context.Context, input NewsInput) (content.NewsPost, error) {
	ctx, span := startSpan(ctx, "usecase.ContentService.CreateNews")
	defer span.End()

	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)
	if input.Title == "" {
		return content.NewsPost{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Body == "" {
		return content.NewsPost{}, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return content.NewsPost{}, fmt.Errorf("generate news id: %w", err)
	}

	publishedAt := input.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = s.now().UTC()
	}

	item := content.NewsPost{
		ID:          id,
		Title:       input.Title,
		Body:        input.Body,
		PublishedAt: publishedAt,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateNews(ctx, item); err != nil {
		return content.NewsPost{}, fmt.Errorf("create news: %w", err)
	}

	return item, nil
}

func (s *ContentService) DeleteNews(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "usecase.ContentService.DeleteNews")
	defer span.End()

	deleted, err := s.repo.DeleteNews(ctx, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: news=%s", ErrNotFound, id)
	}

	return nil
}

func (s *ContentService) ListMedia(ctx context.Context) ([]content.MediaItem, error) {
	ctx, span := startSpan(ctx, "usecase.ContentService.ListMedia")
	defer span.End()

	items, err := s.repo.ListMedia(ctx)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	if items == nil {
		items = []content.MediaItem{}
	}

	return items, nil
}

func (s *ContentService) CreateMedia(ctx context.Context, input MediaInput) (content.MediaItem, error) {
	ctx, span := startSpan(ctx, "usecase.ContentService.CreateMedia")
	defer span.End()

	input.Title = strings.TrimSpace(input.Title)
	input.URL = strings.TrimSpace(input.URL)
	input.Kind = strings.TrimSpace(input.Kind)
	if input.Title == "" {
		return content.MediaItem{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.URL == "" {
		return content.MediaItem{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	if input.Kind == "" {
		input.Kind = "image"
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return content.MediaItem{}, fmt.Errorf("generate media id: %w", err)
	}

	item := content.MediaItem{
		ID:        id,
		Title:     input.Title,
		URL:       input.URL,
		Kind:      input.Kind,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateMedia(ctx, item); err != nil {
		return content.MediaItem{}, fmt.Errorf("create media: %w", err)
	}

	return item, nil
}

func (s *ContentService) DeleteMedia(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "usecase.ContentService.DeleteMedia")
	defer span.End()

	deleted, err := s.repo.DeleteMedia(ctx, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: media=%s", ErrNotFound, id)
	}

	return nil
}

func (s *ContentService) ListMerch(ctx context.Context) ([]content.MerchItem, error) {
	ctx, span := startSpan(ctx, "usecase.ContentService.ListMerch")
	defer span.End()

	items, err := s.repo.ListMerch(ctx)
	if err != nil {
		return nil, fmt.Errorf("list merch: %w", err)
	}
	if items == nil {
		items = []content.MerchItem{}
	}

	return items, nil
}

func (s *ContentService) CreateMerch(ctx context.Context, input MerchInput) (content.MerchItem, error) {
	ctx, span := startSpan(ctx, "usecase.ContentService.CreateMerch")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return content.MerchItem{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	priceCents, err := money.ParseMajor(strings.TrimSpace(input.Price))
	if err != nil {
		return content.MerchItem{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return content.MerchItem{}, fmt.Errorf("generate merch id: %w", err)
	}

	item := content.MerchItem{
		ID:         id,
		Name:       input.Name,
		PriceCents: priceCents,
		ImageURL:   strings.TrimSpace(input.ImageURL),
		Active:     input.Active,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateMerch(ctx, item); err != nil {
		return content.MerchItem{}, fmt.Errorf("create merch: %w", err)
	}

	return item, nil
}

func (s *ContentService) DeleteMerch(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "usecase.ContentService.DeleteMerch")
	defer span.End()

	deleted, err := s.repo.DeleteMerch(ctx, id)
	if err != nil {
		return fmt.Errorf("delete merch: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: merch=%s", ErrNotFound, id)
	}

	return nil
}
