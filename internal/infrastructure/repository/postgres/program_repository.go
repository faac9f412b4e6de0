package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/northcourt/club-api/internal/domain/program"
	qb "github.com/northcourt/club-api/internal/platform/querybuilder"
)

type programTableModel struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Season     string    `db:"season"`
	PriceCents int64     `db:"price_cents"`
	CreatedAt  time.Time `db:"created_at"`
}

func programFromRow(row programTableModel) program.Program {
	return program.Program{
		ID:         row.ID,
		Name:       row.Name,
		Season:     row.Season,
		PriceCents: row.PriceCents,
		CreatedAt:  row.CreatedAt,
	}
}

type ProgramRepository struct {
	db *sqlx.DB
}

func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

func (r *ProgramRepository) Create(ctx context.Context, item program.Program) error {
	query, args, err := qb.InsertModel("programs", programTableModel{
		ID:         item.ID,
		Name:       item.Name,
		Season:     item.Season,
		PriceCents: item.PriceCents,
		CreatedAt:  item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert program query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert program: %w", err)
	}

	return nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, id string) (program.Program, bool, error) {
	query, args, err := qb.Select("*").From("programs").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return program.Program{}, false, fmt.Errorf("build select program query: %w", err)
	}

	var row programTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return program.Program{}, false, nil
		}
		return program.Program{}, false, fmt.Errorf("get program: %w", err)
	}

	return programFromRow(row), true, nil
}

func (r *ProgramRepository) List(ctx context.Context) ([]program.Program, error) {
	query, args, err := qb.Select("*").From("programs").
		OrderBy("season DESC", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list programs query: %w", err)
	}

	var rows []programTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}

	out := make([]program.Program, 0, len(rows))
	for _, row := range rows {
		out = append(out, programFromRow(row))
	}

	return out, nil
}

func (r *ProgramRepository) Update(ctx context.Context, item program.Program) (bool, error) {
	query, args, err := qb.Update("programs").
		Set("name", item.Name).
		Set("season", item.Season).
		Set("price_cents", item.PriceCents).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update program query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update program: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update program rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom("programs").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete program query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete program: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete program rows affected: %w", err)
	}

	return affected > 0, nil
}
