package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/northcourt/club-api/internal/domain/order"
	qb "github.com/northcourt/club-api/internal/platform/querybuilder"
)

type orderTableModel struct {
	ID            string         `db:"id"`
	ItemID        string         `db:"item_id"`
	AmountCents   int64          `db:"amount_cents"`
	Currency      string         `db:"currency"`
	Status        string         `db:"status"`
	PaymentRef    sql.NullString `db:"payment_ref"`
	CustomerEmail sql.NullString `db:"customer_email"`
	CustomerName  sql.NullString `db:"customer_name"`
	CreatedAt     time.Time      `db:"created_at"`
}

func orderFromRow(row orderTableModel) order.Order {
	return order.Order{
		ID:            row.ID,
		ItemID:        row.ItemID,
		AmountCents:   row.AmountCents,
		Currency:      row.Currency,
		Status:        row.Status,
		PaymentRef:    row.PaymentRef.String,
		CustomerEmail: row.CustomerEmail.String,
		CustomerName:  row.CustomerName.String,
		CreatedAt:     row.CreatedAt,
	}
}

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, item order.Order) error {
	query, args, err := qb.InsertModel("orders", orderTableModel{
		ID:            item.ID,
		ItemID:        item.ItemID,
		AmountCents:   item.AmountCents,
		Currency:      item.Currency,
		Status:        item.Status,
		PaymentRef:    nullString(item.PaymentRef),
		CustomerEmail: nullString(item.CustomerEmail),
		CustomerName:  nullString(item.CustomerName),
		CreatedAt:     item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert order query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	query, args, err := qb.Select("*").From("orders").
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list orders query: %w", err)
	}

	var rows []orderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]order.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, orderFromRow(row))
	}

	return out, nil
}
