package registration

import "context"

// Patch carries admin-editable fields; nil means leave unchanged.
type Patch struct {
	PlayerName     *string
	ParentName     *string
	Email          *string
	Phone          *string
	WaiverAccepted *bool
	ETransferNote  *string
	TeamID         *string
	ProgramID      *string
}

// Repository describes registration persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Registration) error
	GetByID(ctx context.Context, id string) (Registration, bool, error)
	List(ctx context.Context) ([]Registration, error)
	Update(ctx context.Context, id string, patch Patch) (Registration, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// SetWaiverURL overwrites waiver_url; last write wins.
	SetWaiverURL(ctx context.Context, id, url string) (bool, error)
	// MarkPaid flips payment_status unpaid->paid with a conditional
	// update; exactly one concurrent caller observes won=true.
	MarkPaid(ctx context.Context, id string) (won bool, err error)
}
