package paygate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/northcourt/club-api/internal/platform/logging"
	"github.com/northcourt/club-api/internal/platform/resilience"
	"github.com/northcourt/club-api/internal/usecase"
)

const defaultTimeout = 10 * time.Second

var errPaygateTransient = crerr.New("payment gateway transient failure")

// Decline reasons by gateway response code. Code 0 is approved; any
// other code is a business decline, never a transport failure.
var declineReasonByCode = map[int]string{
	1: "declined",
	2: "insufficient funds",
	3: "expired card",
	4: "invalid card number",
	5: "card not supported",
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AccountID      string
	APIToken       string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client wraps the external card-processing API. Transport failures
// surface as usecase.ErrGatewayUnavailable; business declines come back
// as a declined result. There is deliberately no retry here: the
// upstream API does not guarantee idempotency for repeated charge
// attempts and a local retry could double-charge.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	accountID      string
	apiToken       string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

var _ usecase.PaymentGateway = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		accountID:      strings.TrimSpace(cfg.AccountID),
		apiToken:       strings.TrimSpace(cfg.APIToken),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) Charge(ctx context.Context, input usecase.GatewayChargeInput) (usecase.GatewayResult, error) {
	if input.AmountCents <= 0 {
		return usecase.GatewayResult{}, fmt.Errorf("charge amount must be positive minor units, got %d", input.AmountCents)
	}
	if strings.TrimSpace(input.Currency) == "" {
		return usecase.GatewayResult{}, fmt.Errorf("charge currency is required")
	}
	if input.CardToken == "" && input.Card == nil {
		return usecase.GatewayResult{}, fmt.Errorf("charge requires a card or a saved card token")
	}

	body := chargePayload{
		AccountID: c.accountID,
		Amount:    input.AmountCents,
		Currency:  strings.ToUpper(strings.TrimSpace(input.Currency)),
		CardToken: input.CardToken,
		SaveCard:  input.SaveCard,
		Customer: customerPayload{
			Name:  input.CustomerName,
			Email: input.CustomerEmail,
		},
	}
	if input.Card != nil {
		body.Card = &cardPayload{
			Number: input.Card.Number,
			Expiry: input.Card.Expiry,
			CVV:    input.Card.CVV,
		}
	}

	raw, err := c.doJSON(ctx, http.MethodPost, "/api/v2/charge", body)
	if err != nil {
		return usecase.GatewayResult{}, err
	}

	return c.resultFromEnvelope(ctx, raw)
}

func (c *Client) TokenizeCard(ctx context.Context, card usecase.GatewayCard, customerEmail string) (usecase.GatewayResult, error) {
	if card.Number == "" || card.Expiry == "" {
		return usecase.GatewayResult{}, fmt.Errorf("card number and expiry are required")
	}

	body := tokenizePayload{
		AccountID:     c.accountID,
		CustomerEmail: strings.TrimSpace(customerEmail),
		Card: cardPayload{
			Number: card.Number,
			Expiry: card.Expiry,
			CVV:    card.CVV,
		},
	}

	raw, err := c.doJSON(ctx, http.MethodPost, "/api/v2/vault", body)
	if err != nil {
		return usecase.GatewayResult{}, err
	}

	return c.resultFromEnvelope(ctx, raw)
}

func (c *Client) ListSavedCards(ctx context.Context, customerEmail string) ([]usecase.GatewaySavedCard, error) {
	customerEmail = strings.TrimSpace(customerEmail)
	if customerEmail == "" {
		return nil, fmt.Errorf("customer email is required")
	}

	query := url.Values{}
	query.Set("account_id", c.accountID)
	query.Set("customer_email", customerEmail)

	raw, err := c.doJSON(ctx, http.MethodGet, "/api/v2/vault?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var decoded listCardsEnvelope
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode saved cards response: %v", usecase.ErrGatewayUnavailable, err)
	}
	if decoded.ResponseCode != 0 {
		return nil, &usecase.DeclinedError{Reason: declineReason(decoded.ResponseCode, decoded.ResponseMessage)}
	}

	return decoded.Cards, nil
}

func (c *Client) DeleteSavedCard(ctx context.Context, cardToken string) error {
	cardToken = strings.TrimSpace(cardToken)
	if cardToken == "" {
		return fmt.Errorf("card token is required")
	}

	query := url.Values{}
	query.Set("account_id", c.accountID)

	raw, err := c.doJSON(ctx, http.MethodDelete, "/api/v2/vault/"+url.PathEscape(cardToken)+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	var decoded responseEnvelope
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("%w: decode delete card response: %v", usecase.ErrGatewayUnavailable, err)
	}
	if decoded.ResponseCode != 0 {
		return &usecase.DeclinedError{Reason: declineReason(decoded.ResponseCode, decoded.ResponseMessage)}
	}

	return nil
}

func (c *Client) resultFromEnvelope(ctx context.Context, raw []byte) (usecase.GatewayResult, error) {
	var decoded responseEnvelope
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return usecase.GatewayResult{}, fmt.Errorf("%w: decode gateway response: %v", usecase.ErrGatewayUnavailable, err)
	}

	if decoded.ResponseCode != 0 {
		reason := declineReason(decoded.ResponseCode, decoded.ResponseMessage)
		c.logger.InfoContext(ctx, "gateway declined request",
			"response_code", decoded.ResponseCode,
			"reason", reason,
		)
		return usecase.GatewayResult{
			Status:        usecase.GatewayDeclined,
			DeclineReason: reason,
			Raw:           raw,
		}, nil
	}

	return usecase.GatewayResult{
		Status:        usecase.GatewayApproved,
		TransactionID: decoded.TransactionID,
		ApprovalCode:  decoded.ApprovalCode,
		CardToken:     decoded.CardToken,
		Raw:           raw,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "payment gateway circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: circuit open", usecase.ErrGatewayUnavailable)
		}
	}

	raw, err := c.execute(ctx, method, c.baseURL+path, body)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errPaygateTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if crerr.Is(err, errPaygateTransient) {
			return nil, fmt.Errorf("%w: %v", usecase.ErrGatewayUnavailable, err)
		}
		return nil, err
	}

	return raw, nil
}

func (c *Client) execute(ctx context.Context, method, fullURL string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		encoded, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal gateway request: %w", err)
		}
		_, _ = buf.Write(encoded)
		reader = strings.NewReader(buf.String())
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errPaygateTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errPaygateTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: gateway status=%d", errPaygateTransient, resp.StatusCode)
	}

	return raw, nil
}

func declineReason(code int, message string) string {
	if reason, ok := declineReasonByCode[code]; ok {
		return reason
	}
	message = strings.TrimSpace(message)
	if message != "" {
		return message
	}
	return fmt.Sprintf("declined with code %d", code)
}

type responseEnvelope struct {
	ResponseCode    int    `json:"response_code"`
	ResponseMessage string `json:"response_message"`
	TransactionID   string `json:"transaction_id"`
	ApprovalCode    string `json:"approval_code"`
	CardToken       string `json:"card_token"`
}

type listCardsEnvelope struct {
	ResponseCode    int                        `json:"response_code"`
	ResponseMessage string                     `json:"response_message"`
	Cards           []usecase.GatewaySavedCard `json:"cards"`
}

type chargePayload struct {
	AccountID string          `json:"account_id"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	CardToken string          `json:"card_token,omitempty"`
	Card      *cardPayload    `json:"card,omitempty"`
	SaveCard  bool            `json:"save_card,omitempty"`
	Customer  customerPayload `json:"customer"`
}

type tokenizePayload struct {
	AccountID     string      `json:"account_id"`
	CustomerEmail string      `json:"customer_email"`
	Card          cardPayload `json:"card"`
}

type cardPayload struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv,omitempty"`
}

type customerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
