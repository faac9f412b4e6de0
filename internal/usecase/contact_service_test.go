package usecase

import (
	"errors"
	"testing"

	"github.com/northcourt/club-api/internal/infrastructure/repository/memory"
)

func TestContactService_Submit(t *testing.T) {
	repo := memory.NewContactRepository()
	service := NewContactService(repo, &seqIDGenerator{prefix: "msg"}, discardLogger())

	item, err := service.Submit(t.Context(), SubmitContactInput{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "604-555-0101",
		Message: "When do tryouts start?",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if item.IsRead {
		t.Fatal("new messages must start unread")
	}

	items, err := service.List(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one message, got %d", len(items))
	}

	if err := service.MarkRead(t.Context(), item.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	items, err = service.List(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !items[0].IsRead {
		t.Fatal("expected message to be marked read")
	}
}

func TestContactService_SubmitInvalidEmail(t *testing.T) {
	repo := memory.NewContactRepository()
	service := NewContactService(repo, &seqIDGenerator{prefix: "msg"}, discardLogger())

	_, err := service.Submit(t.Context(), SubmitContactInput{
		Name:    "Jane Doe",
		Email:   "not-an-email",
		Message: "hello",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	items, listErr := service.List(t.Context())
	if listErr != nil {
		t.Fatalf("list failed: %v", listErr)
	}
	if len(items) != 0 {
		t.Fatalf("rejected message must not persist, found %d", len(items))
	}
}

func TestContactService_MarkReadUnknown(t *testing.T) {
	service := NewContactService(memory.NewContactRepository(), &seqIDGenerator{prefix: "msg"}, discardLogger())

	if err := service.MarkRead(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
