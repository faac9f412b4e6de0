package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/northcourt/club-api/internal/domain/registration"
	qb "github.com/northcourt/club-api/internal/platform/querybuilder"
)

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, item registration.Registration) error {
	query, args, err := qb.InsertModel("registrations", registrationToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert registration query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (registration.Registration, bool, error) {
	query, args, err := qb.Select("*").From("registrations").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return registration.Registration{}, false, fmt.Errorf("build select registration query: %w", err)
	}

	var row registrationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, fmt.Errorf("get registration: %w", err)
	}

	return registrationFromRow(row), true, nil
}

func (r *RegistrationRepository) List(ctx context.Context) ([]registration.Registration, error) {
	query, args, err := qb.Select("*").From("registrations").
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list registrations query: %w", err)
	}

	var rows []registrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	out := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, registrationFromRow(row))
	}

	return out, nil
}

func (r *RegistrationRepository) Update(ctx context.Context, id string, patch registration.Patch) (registration.Registration, bool, error) {
	builder := qb.Update("registrations")
	changed := false
	if patch.PlayerName != nil {
		builder.Set("player_name", *patch.PlayerName)
		changed = true
	}
	if patch.ParentName != nil {
		builder.Set("parent_name", *patch.ParentName)
		changed = true
	}
	if patch.Email != nil {
		builder.Set("email", *patch.Email)
		changed = true
	}
	if patch.Phone != nil {
		builder.Set("phone", *patch.Phone)
		changed = true
	}
	if patch.WaiverAccepted != nil {
		builder.Set("waiver_accepted", *patch.WaiverAccepted)
		changed = true
	}
	if patch.ETransferNote != nil {
		builder.Set("etransfer_note", nullString(*patch.ETransferNote))
		changed = true
	}
	if patch.TeamID != nil {
		builder.Set("team_id", *patch.TeamID)
		changed = true
	}
	if patch.ProgramID != nil {
		builder.Set("program_id", *patch.ProgramID)
		changed = true
	}
	if !changed {
		// Empty patch touches nothing; report current state.
		return r.GetByID(ctx, id)
	}
	builder.Set("updated_at", time.Now().UTC())

	query, args, err := builder.Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return registration.Registration{}, false, fmt.Errorf("build update registration query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return registration.Registration{}, false, fmt.Errorf("update registration: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return registration.Registration{}, false, fmt.Errorf("update registration rows affected: %w", err)
	}
	if affected == 0 {
		return registration.Registration{}, false, nil
	}

	return r.GetByID(ctx, id)
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom("registrations").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete registration query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete registration rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *RegistrationRepository) SetWaiverURL(ctx context.Context, id, url string) (bool, error) {
	const query = `
UPDATE registrations
SET waiver_url = $1, updated_at = now()
WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, url, id)
	if err != nil {
		return false, fmt.Errorf("set waiver url: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set waiver url rows affected: %w", err)
	}

	return affected > 0, nil
}

// MarkPaid flips unpaid to paid with a conditional update so only one
// concurrent confirmation can win the row.
func (r *RegistrationRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	const query = `
UPDATE registrations
SET payment_status = $1, updated_at = now()
WHERE id = $2
  AND payment_status = $3`

	result, err := r.db.ExecContext(ctx, query,
		string(registration.PaymentStatusPaid),
		id,
		string(registration.PaymentStatusUnpaid),
	)
	if err != nil {
		return false, fmt.Errorf("mark registration paid: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark registration paid rows affected: %w", err)
	}

	return affected > 0, nil
}
