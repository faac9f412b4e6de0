package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/northcourt/club-api/internal/domain/payment"
	qb "github.com/northcourt/club-api/internal/platform/querybuilder"
)

// paymentRegistrationConstraint is the unique index on registration_id,
// the backstop against two payments for one registration.
const paymentRegistrationConstraint = "payments_registration_id_key"

type paymentTableModel struct {
	ID             string         `db:"id"`
	AmountCents    int64          `db:"amount_cents"`
	Currency       string         `db:"currency"`
	Status         string         `db:"status"`
	Type           string         `db:"type"`
	CustomerEmail  sql.NullString `db:"customer_email"`
	CustomerName   sql.NullString `db:"customer_name"`
	TransactionRef sql.NullString `db:"transaction_ref"`
	Metadata       []byte         `db:"metadata"`
	RegistrationID sql.NullString `db:"registration_id"`
	CreatedAt      time.Time      `db:"created_at"`
}

func paymentFromRow(row paymentTableModel) payment.Payment {
	return payment.Payment{
		ID:             row.ID,
		AmountCents:    row.AmountCents,
		Currency:       row.Currency,
		Status:         row.Status,
		Type:           payment.Type(row.Type),
		CustomerEmail:  row.CustomerEmail.String,
		CustomerName:   row.CustomerName.String,
		TransactionRef: row.TransactionRef.String,
		Metadata:       row.Metadata,
		RegistrationID: row.RegistrationID.String,
		CreatedAt:      row.CreatedAt,
	}
}

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, item payment.Payment) error {
	query, args, err := qb.InsertModel("payments", paymentTableModel{
		ID:             item.ID,
		AmountCents:    item.AmountCents,
		Currency:       item.Currency,
		Status:         item.Status,
		Type:           string(item.Type),
		CustomerEmail:  nullString(item.CustomerEmail),
		CustomerName:   nullString(item.CustomerName),
		TransactionRef: nullString(item.TransactionRef),
		Metadata:       item.Metadata,
		RegistrationID: nullString(item.RegistrationID),
		CreatedAt:      item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert payment query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, paymentRegistrationConstraint) {
			return payment.ErrRegistrationAlreadyPaid
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]payment.Payment, error) {
	query, args, err := qb.Select("*").From("payments").
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list payments query: %w", err)
	}

	var rows []paymentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, paymentFromRow(row))
	}

	return out, nil
}

func (r *PaymentRepository) GetByRegistrationID(ctx context.Context, registrationID string) (payment.Payment, bool, error) {
	query, args, err := qb.Select("*").From("payments").
		Where(qb.Eq("registration_id", registrationID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return payment.Payment{}, false, fmt.Errorf("build select payment query: %w", err)
	}

	var row paymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return payment.Payment{}, false, nil
		}
		return payment.Payment{}, false, fmt.Errorf("get payment by registration: %w", err)
	}

	return paymentFromRow(row), true, nil
}
