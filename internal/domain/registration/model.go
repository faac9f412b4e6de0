package registration

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Registration is one player's enrollment in one program/team.
type Registration struct {
	ID             string
	PlayerName     string
	ParentName     string
	Email          string
	Phone          string
	WaiverAccepted bool
	// WaiverURL is empty until a waiver document is uploaded; a later
	// upload overwrites it (re-upload replaces).
	WaiverURL     string
	ETransferNote string
	PaymentStatus PaymentStatus
	TeamID        string
	ProgramID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r Registration) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("registration id is required")
	}
	if r.PlayerName == "" {
		return fmt.Errorf("player name is required")
	}
	if r.ParentName == "" {
		return fmt.Errorf("parent name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if r.TeamID == "" {
		return fmt.Errorf("team id is required")
	}
	if r.ProgramID == "" {
		return fmt.Errorf("program id is required")
	}
	switch r.PaymentStatus {
	case PaymentStatusUnpaid, PaymentStatusPaid:
	default:
		return fmt.Errorf("invalid payment status %q", r.PaymentStatus)
	}

	return nil
}
