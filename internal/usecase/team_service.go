package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/northcourt/club-api/internal/domain/team"
	idgen "github.com/northcourt/club-api/internal/platform/id"
)

type TeamInput struct {
	Gender   string
	AgeGroup string
}

type TeamService struct {
	repo   team.Repository
	idGen  idgen.Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewTeamService(repo team.Repository, idGen idgen.Generator, logger *slog.Logger) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamService{
		repo:   repo,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	item, err := s.buildTeam(input)
	if err != nil {
		return team.Team{}, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, team.ErrDuplicate) {
			return team.Team{}, fmt.Errorf("%w: team %s already exists", ErrConflict, item.Label())
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "label", item.Label())

	return item, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (team.Team, error) {
	ctx, span := startSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}

	return item, nil
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if items == nil {
		items = []team.Team{}
	}

	return items, nil
}

func (s *TeamService) Update(ctx context.Context, id string, input TeamInput) (team.Team, error) {
	ctx, span := startSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	current, err := s.Get(ctx, id)
	if err != nil {
		return team.Team{}, err
	}

	item, err := s.buildTeam(input)
	if err != nil {
		return team.Team{}, err
	}
	item.ID = current.ID
	item.CreatedAt = current.CreatedAt

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		if errors.Is(err, team.ErrDuplicate) {
			return team.Team{}, fmt.Errorf("%w: team %s already exists", ErrConflict, item.Label())
		}
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	if !updated {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}

	return item, nil
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}

	return nil
}

func (s *TeamService) buildTeam(input TeamInput) (team.Team, error) {
	input.Gender = strings.TrimSpace(input.Gender)
	input.AgeGroup = strings.TrimSpace(input.AgeGroup)

	if input.Gender == "" {
		return team.Team{}, fmt.Errorf("%w: gender is required", ErrInvalidInput)
	}
	if input.AgeGroup == "" {
		return team.Team{}, fmt.Errorf("%w: age group is required", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	return team.Team{
		ID:        id,
		Gender:    input.Gender,
		AgeGroup:  input.AgeGroup,
		CreatedAt: s.now().UTC(),
	}, nil
}
