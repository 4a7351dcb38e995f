package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/elevate-careers-api/pkg/config"
)

// APIError is a rejection reported by the gateway itself, as opposed to
// a transport fault reaching it.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "paystack request rejected"
	}
	return e.Message
}

// Client is a thin HTTP adapter over the gateway's transaction API.
type Client struct {
	secretKey   string
	baseURL     string
	callbackURL string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient constructs a gateway client. The configured timeout bounds
// every outbound call so a hung gateway cannot hang a request forever.
func NewClient(cfg config.PaystackConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &Client{
		secretKey:   cfg.SecretKey,
		baseURL:     baseURL,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Configured reports whether the client holds a secret key.
func (c *Client) Configured() bool {
	return c.secretKey != ""
}

// CallbackURL returns the configured post-payment redirect target.
func (c *Client) CallbackURL() string {
	return c.callbackURL
}

// InitializeRequest describes a new remote transaction. Amount is in
// the currency's minor units.
type InitializeRequest struct {
	Reference   string              `json:"reference"`
	Amount      int64               `json:"amount"`
	Email       string              `json:"email"`
	Currency    string              `json:"currency"`
	CallbackURL string              `json:"callback_url,omitempty"`
	Metadata    TransactionMetadata `json:"metadata"`
}

// InitializeData is the gateway's handle for redirecting the customer.
type InitializeData struct {
	AccessCode       string `json:"access_code"`
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction creates a remote transaction and returns the
// authorization handle the client is redirected with.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeData, error) {
	if req.CallbackURL == "" {
		req.CallbackURL = c.callbackURL
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var init InitializeData
	if err := json.Unmarshal(data, &init); err != nil {
		return nil, fmt.Errorf("decode initialize response: %w", err)
	}
	return &init, nil
}

// VerifyTransaction fetches the live status of a transaction by
// reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*ChargeData, error) {
	if reference == "" {
		return nil, fmt.Errorf("reference required")
	}

	data, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var charge ChargeData
	if err := json.Unmarshal(data, &charge); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}
	return &charge, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read paystack response: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode paystack response (%d): %w", resp.StatusCode, err)
	}

	if !envelope.Status {
		c.logger.Warn("paystack request rejected",
			zap.String("path", path),
			zap.Int("http_status", resp.StatusCode),
			zap.String("message", envelope.Message),
		)
		return nil, &APIError{Message: envelope.Message}
	}

	return envelope.Data, nil
}
