package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/northcourt/club-api/internal/domain/program"
	idgen "github.com/northcourt/club-api/internal/platform/id"
	"github.com/northcourt/club-api/internal/platform/money"
)

type ProgramInput struct {
	Name   string
	Season string
	// Price is major units ("150.00"); fractional cents are rejected.
	Price string
}

type ProgramService struct {
	repo   program.Repository
	idGen  idgen.Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewProgramService(repo program.Repository, idGen idgen.Generator, logger *slog.Logger) *ProgramService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProgramService{
		repo:   repo,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ProgramService) Create(ctx context.Context, input ProgramInput) (program.Program, error) {
	ctx, span := startSpan(ctx, "usecase.ProgramService.Create")
	defer span.End()

	item, err := s.buildProgram(input)
	if err != nil {
		return program.Program{}, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return program.Program{}, fmt.Errorf("create program: %w", err)
	}

	s.logger.InfoContext(ctx, "program created",
		"program_id", item.ID,
		"name", item.Name,
		"price_cents", item.PriceCents,
	)

	return item, nil
}

func (s *ProgramService) Get(ctx context.Context, id string) (program.Program, error) {
	ctx, span := startSpan(ctx, "usecase.ProgramService.Get")
	defer span.End()

	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return program.Program{}, fmt.Errorf("get program: %w", err)
	}
	if !exists {
		return program.Program{}, fmt.Errorf("%w: program=%s", ErrNotFound, id)
	}

	return item, nil
}

func (s *ProgramService) List(ctx context.Context) ([]program.Program, error) {
	ctx, span := startSpan(ctx, "usecase.ProgramService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	if items == nil {
		items = []program.Program{}
	}

	return items, nil
}

func (s *ProgramService) Update(ctx context.Context, id string, input ProgramInput) (program.Program, error) {
	ctx, span := startSpan(ctx, "usecase.ProgramService.Update")
	defer span.End()

	current, err := s.Get(ctx, id)
	if err != nil {
		return program.Program{}, err
	}

	item, err := s.buildProgram(input)
	if err != nil {
		return program.Program{}, err
	}
	item.ID = current.ID
	item.CreatedAt = current.CreatedAt

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return program.Program{}, fmt.Errorf("update program: %w", err)
	}
	if !updated {
		return program.Program{}, fmt.Errorf("%w: program=%s", ErrNotFound, id)
	}

	return item, nil
}

func (s *ProgramService) Delete(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "usecase.ProgramService.Delete")
	defer span.End()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: program=%s", ErrNotFound, id)
	}

	return nil
}

func (s *ProgramService) buildProgram(input ProgramInput) (program.Program, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Season = strings.TrimSpace(input.Season)
	input.Price = strings.TrimSpace(input.Price)

	if input.Name == "" {
		return program.Program{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Season == "" {
		return program.Program{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	priceCents, err := money.ParseMajor(input.Price)
	if err != nil {
		return program.Program{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return program.Program{}, fmt.Errorf("generate program id: %w", err)
	}

	return program.Program{
		ID:         id,
		Name:       input.Name,
		Season:     input.Season,
		PriceCents: priceCents,
		CreatedAt:  s.now().UTC(),
	}, nil
}
