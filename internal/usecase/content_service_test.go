package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/northcourt/club-api/internal/infrastructure/repository/memory"
)

func TestContentService_Merch(t *testing.T) {
	service := NewContentService(memory.NewContentRepository(), &seqIDGenerator{prefix: "item"}, discardLogger())

	item, err := service.CreateMerch(t.Context(), MerchInput{
		Name:   "Club Hoodie",
		Price:  "45.00",
		Active: true,
	})
	if err != nil {
		t.Fatalf("create merch failed: %v", err)
	}
	if item.PriceCents != 4500 {
		t.Fatalf("expected 4500 minor units, got %d", item.PriceCents)
	}

	_, err = service.CreateMerch(t.Context(), MerchInput{Name: "Bad Price", Price: "1.005"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for sub-cent price, got %v", err)
	}

	items, err := service.ListMerch(t.Context())
	if err != nil {
		t.Fatalf("list merch failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
}

func TestContentService_News(t *testing.T) {
	service := NewContentService(memory.NewContentRepository(), &seqIDGenerator{prefix: "post"}, discardLogger())

	published := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	post, err := service.CreateNews(t.Context(), NewsInput{
		Title:       "Fall tryouts announced",
		Body:        "Tryouts run the first week of September.",
		PublishedAt: published,
	})
	if err != nil {
		t.Fatalf("create news failed: %v", err)
	}
	if !post.PublishedAt.Equal(published) {
		t.Fatalf("unexpected published at: %s", post.PublishedAt)
	}

	if err := service.DeleteNews(t.Context(), post.ID); err != nil {
		t.Fatalf("delete news failed: %v", err)
	}
	if err := service.DeleteNews(t.Context(), post.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	items, err := service.ListNews(t.Context())
	if err != nil {
		t.Fatalf("list news failed: %v", err)
	}
	if items == nil {
		t.Fatal("list must be empty, not nil")
	}
}

func TestContentService_MediaDefaultsKind(t *testing.T) {
	service := NewContentService(memory.NewContentRepository(), &seqIDGenerator{prefix: "media"}, discardLogger())

	item, err := service.CreateMedia(t.Context(), MediaInput{
		Title: "Season opener highlights",
		URL:   "https://cdn.example.com/highlights.mp4",
	})
	if err != nil {
		t.Fatalf("create media failed: %v", err)
	}
	if item.Kind != "image" {
		t.Fatalf("expected default kind image, got %s", item.Kind)
	}
}
