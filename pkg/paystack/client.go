package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/adaezeudoka/hopewell-foundation-backend/pkg/errors"
)

const (
	defaultBaseURL          = "https://api.paystack.co"
	defaultTimeout          = 10 * time.Second
	responseBodyLimit int64 = 1 << 20
)

// StatusSuccess is the gateway's terminal success value for a transaction.
const StatusSuccess = "success"

var errSecretKeyRequired = errors.New("paystack secret key is required")

// Client calls Paystack's server-to-server transaction API. The secret key is
// held here and never leaves the process.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	secretKey     string
	webhookSecret string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout bounds outbound verify calls.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the Paystack client given the server-held secrets.
func NewClient(secretKey, webhookSecret string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(secretKey)
	if trimmedKey == "" {
		return nil, errSecretKeyRequired
	}

	client := &Client{
		secretKey:     trimmedKey,
		webhookSecret: strings.TrimSpace(webhookSecret),
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// WebhookSecret returns the shared secret used to authenticate webhook deliveries.
func (c *Client) WebhookSecret() string {
	if c == nil {
		return ""
	}
	return c.webhookSecret
}

// VerifyResult is the normalized outcome of a verify-by-reference call. The
// amount, fees, and paid-at values come from the gateway's own response body,
// never from anything a browser supplied.
type VerifyResult struct {
	Status        string
	Reference     string
	TransactionID int64
	Amount        int64
	Fees          int64
	Channel       string
	PaidAt        *time.Time
}

// Success reports whether the gateway considers the transaction settled.
func (v VerifyResult) Success() bool {
	return v.Status == StatusSuccess
}

type verifyEnvelope struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    verifyDataBody `json:"data"`
}

type verifyDataBody struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Fees      int64  `json:"fees"`
	Channel   string `json:"channel"`
	PaidAt    string `json:"paid_at"`
}

// Verify calls GET /transaction/verify/{reference} and normalizes the response.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	trimmed := strings.TrimSpace(reference)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference is required")
	}

	endpoint := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, url.PathEscape(trimmed))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build verify request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "paystack unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read verify response")
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction reference not found at gateway")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("paystack verify returned %s", resp.Status)).
			WithDetails(map[string]any{"status_code": resp.StatusCode})
	}

	var envelope verifyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeVerification, err, "decode verify response")
	}
	if !envelope.Status {
		return nil, pkgerrors.New(pkgerrors.CodeVerification, envelope.Message)
	}

	result := &VerifyResult{
		Status:        envelope.Data.Status,
		Reference:     envelope.Data.Reference,
		TransactionID: envelope.Data.ID,
		Amount:        envelope.Data.Amount,
		Fees:          envelope.Data.Fees,
		Channel:       envelope.Data.Channel,
	}
	if envelope.Data.PaidAt != "" {
		if paidAt, parseErr := time.Parse(time.RFC3339, envelope.Data.PaidAt); parseErr == nil {
			result.PaidAt = &paidAt
		}
	}
	return result, nil
}
