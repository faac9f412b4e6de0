package postgres

import (
	"database/sql"
	"time"

	"github.com/northcourt/club-api/internal/domain/registration"
)

type registrationTableModel struct {
	ID             string         `db:"id"`
	PlayerName     string         `db:"player_name"`
	ParentName     string         `db:"parent_name"`
	Email          string         `db:"email"`
	Phone          string         `db:"phone"`
	WaiverAccepted bool           `db:"waiver_accepted"`
	WaiverURL      sql.NullString `db:"waiver_url"`
	ETransferNote  sql.NullString `db:"etransfer_note"`
	PaymentStatus  string         `db:"payment_status"`
	TeamID         string         `db:"team_id"`
	ProgramID      string         `db:"program_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func registrationFromRow(row registrationTableModel) registration.Registration {
	return registration.Registration{
		ID:             row.ID,
		PlayerName:     row.PlayerName,
		ParentName:     row.ParentName,
		Email:          row.Email,
		Phone:          row.Phone,
		WaiverAccepted: row.WaiverAccepted,
		WaiverURL:      row.WaiverURL.String,
		ETransferNote:  row.ETransferNote.String,
		PaymentStatus:  registration.PaymentStatus(row.PaymentStatus),
		TeamID:         row.TeamID,
		ProgramID:      row.ProgramID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func registrationToRow(item registration.Registration) registrationTableModel {
	return registrationTableModel{
		ID:             item.ID,
		PlayerName:     item.PlayerName,
		ParentName:     item.ParentName,
		Email:          item.Email,
		Phone:          item.Phone,
		WaiverAccepted: item.WaiverAccepted,
		WaiverURL:      nullString(item.WaiverURL),
		ETransferNote:  nullString(item.ETransferNote),
		PaymentStatus:  string(item.PaymentStatus),
		TeamID:         item.TeamID,
		ProgramID:      item.ProgramID,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
