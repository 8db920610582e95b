package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
)

const defaultCurrency = "INR"

// RemoteOrder is the payment intent as the gateway reports it.
type RemoteOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Remote order statuses reported by the gateway.
const (
	RemoteStatusCreated   = "created"
	RemoteStatusAttempted = "attempted"
	RemoteStatusPaid      = "paid"
)

// CreateOrderRequest describes a payment intent to open at the gateway.
type CreateOrderRequest struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Client exposes operations against the payment gateway.
type Client interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*RemoteOrder, error)
	FetchOrder(ctx context.Context, gatewayOrderID string) (*RemoteOrder, error)
	KeyID() string
}

// HTTPClient implements Client via the gateway REST API using basic auth.
type HTTPClient struct {
	baseURL    *url.URL
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

type createOrderPayload struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type gatewayErrorPayload struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// NewHTTPClient creates gateway client with a bounded request timeout.
func NewHTTPClient(baseURL, keyID, keySecret string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:   parsed,
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// KeyID returns the public half of the gateway credential pair. It is safe
// to hand to clients; the secret never leaves configuration.
func (c *HTTPClient) KeyID() string {
	return c.keyID
}

// CreateOrder opens a payment intent for the given amount in major currency
// units. The amount is converted to minor units by multiplying by 100 and
// rounding to the nearest integer; fractions below 0.005 of the major unit
// are silently dropped. This conversion is deliberately one-way.
func (c *HTTPClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (*RemoteOrder, error) {
	if !req.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}

	cur := req.Currency
	if cur == "" {
		cur = defaultCurrency
	}
	if _, err := currency.ParseISO(cur); err != nil {
		return nil, fmt.Errorf("%w: unknown currency %q", domainErrors.ErrInvalidAmount, cur)
	}

	receipt := req.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	}

	payload := createOrderPayload{
		Amount:   req.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency: cur,
		Receipt:  receipt,
		Notes:    req.Notes,
	}

	var remote RemoteOrder
	if err := c.do(ctx, http.MethodPost, "/v1/orders", payload, &remote); err != nil {
		return nil, err
	}
	return &remote, nil
}

// FetchOrder returns the current gateway-side state of a payment intent.
func (c *HTTPClient) FetchOrder(ctx context.Context, gatewayOrderID string) (*RemoteOrder, error) {
	if gatewayOrderID == "" {
		return nil, domainErrors.ErrMissingParameter
	}
	var remote RemoteOrder
	if err := c.do(ctx, http.MethodGet, path.Join("/v1/orders", gatewayOrderID), nil, &remote); err != nil {
		return nil, err
	}
	return &remote, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload, out any) error {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and transport failures are retriable by the caller.
		return fmt.Errorf("%w: %s", domainErrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", domainErrors.ErrGatewayUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return json.Unmarshal(raw, out)
	case resp.StatusCode >= 500:
		c.logger.Error("gateway request failed", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %s", domainErrors.ErrGatewayUnavailable, resp.Status)
	default:
		var gwErr gatewayErrorPayload
		_ = json.Unmarshal(raw, &gwErr)
		message := gwErr.Error.Description
		if message == "" {
			message = resp.Status
		}
		c.logger.Warn("gateway rejected request", slog.Int("status", resp.StatusCode), slog.String("reason", message))
		return fmt.Errorf("%w: %s", domainErrors.ErrGatewayRejected, message)
	}
}
