package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/northcourt/club-api/internal/domain/contact"
	qb "github.com/northcourt/club-api/internal/platform/querybuilder"
)

type contactTableModel struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Message   string         `db:"message"`
	IsRead    bool           `db:"is_read"`
	CreatedAt time.Time      `db:"created_at"`
}

func contactFromRow(row contactTableModel) contact.Message {
	return contact.Message{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone.String,
		Message:   row.Message,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
}

type ContactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, item contact.Message) error {
	query, args, err := qb.InsertModel("contact_messages", contactTableModel{
		ID:        item.ID,
		Name:      item.Name,
		Email:     item.Email,
		Phone:     nullString(item.Phone),
		Message:   item.Message,
		IsRead:    item.IsRead,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert contact message query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]contact.Message, error) {
	query, args, err := qb.Select("*").From("contact_messages").
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contact messages query: %w", err)
	}

	var rows []contactTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}

	out := make([]contact.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, contactFromRow(row))
	}

	return out, nil
}

func (r *ContactRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update("contact_messages").
		Set("is_read", true).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build mark contact message read query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark contact message read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark contact message read rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom("contact_messages").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete contact message query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete contact message: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete contact message rows affected: %w", err)
	}

	return affected > 0, nil
}
