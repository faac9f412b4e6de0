package usecase

import "context"

type GatewayStatus string

const (
	GatewayApproved GatewayStatus = "approved"
	GatewayDeclined GatewayStatus = "declined"
)

type GatewayCard struct {
	Number string
	Expiry string
	CVV    string
}

type GatewayChargeInput struct {
	// AmountCents is integer minor units, converted (and checked) by
	// platform/money before it reaches the gateway boundary.
	AmountCents   int64
	Currency      string
	CardToken     string
	Card          *GatewayCard
	CustomerName  string
	CustomerEmail string
	SaveCard      bool
}

// GatewayResult is the tagged outcome of a gateway call: either
// approved with references, or declined with a user-facing reason.
// Transport failures never appear here; they are returned as errors
// wrapping ErrGatewayUnavailable.
type GatewayResult struct {
	Status        GatewayStatus
	TransactionID string
	ApprovalCode  string
	CardToken     string
	DeclineReason string
	// Raw is the gateway response body, persisted as payment metadata.
	Raw []byte
}

type GatewaySavedCard struct {
	Token  string `json:"token"`
	Brand  string `json:"brand"`
	Last4  string `json:"last4"`
	Expiry string `json:"expiry"`
}

// PaymentGateway is the card-processing boundary the workflows call.
type PaymentGateway interface {
	Charge(ctx context.Context, input GatewayChargeInput) (GatewayResult, error)
	TokenizeCard(ctx context.Context, card GatewayCard, customerEmail string) (GatewayResult, error)
	ListSavedCards(ctx context.Context, customerEmail string) ([]GatewaySavedCard, error)
	DeleteSavedCard(ctx context.Context, cardToken string) error
}
