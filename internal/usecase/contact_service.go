package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/northcourt/club-api/internal/domain/contact"
	idgen "github.com/northcourt/club-api/internal/platform/id"
)

var emailValidator = validator.New(validator.WithRequiredStructEnabled())

type SubmitContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type ContactService struct {
	repo   contact.Repository
	idGen  idgen.Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewContactService(repo contact.Repository, idGen idgen.Generator, logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ContactService{
		repo:   repo,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// Submit validates and stores a public contact message. A rejected
// message is never persisted.
func (s *ContactService) Submit(ctx context.Context, input SubmitContactInput) (contact.Message, error) {
	ctx, span := startSpan(ctx, "usecase.ContactService.Submit")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Message = strings.TrimSpace(input.Message)

	if input.Name == "" {
		return contact.Message{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Email == "" {
		return contact.Message{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if err := emailValidator.VarCtx(ctx, input.Email, "email"); err != nil {
		return contact.Message{}, fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
	}
	if input.Message == "" {
		return contact.Message{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return contact.Message{}, fmt.Errorf("generate message id: %w", err)
	}

	item := contact.Message{
		ID:        id,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return contact.Message{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return contact.Message{}, fmt.Errorf("create contact message: %w", err)
	}

	s.logger.InfoContext(ctx, "contact message received", "message_id", item.ID)

	return item, nil
}

func (s *ContactService) List(ctx context.Context) ([]contact.Message, error) {
	ctx, span := startSpan(ctx, "usecase.ContactService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	if items == nil {
		items = []contact.Message{}
	}

	return items, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "usecase.ContactService.MarkRead")
	defer span.End()

	updated, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return fmt.Errorf("mark contact message read: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: contact message=%s", ErrNotFound, id)
	}

	return nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "usecase.ContactService.Delete")
	defer span.End()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: contact message=%s", ErrNotFound, id)
	}

	return nil
}
