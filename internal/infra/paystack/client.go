package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"sparkwash-api/internal/pkg/config"
	"sparkwash-api/internal/pkg/errs"
	"sparkwash-api/internal/usecase/commands"
)

var (
	ErrRequestFailed     = errs.New("paystack request failed")
	ErrDeclinedByGateway = errs.New("paystack declined the request")
)

// Client talks to the Paystack REST API. Initialize is called exactly once
// per checkout; Verify is a read and is retried on transport errors.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(cfg config.PaystackConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

var _ commands.PaymentGateway = (*Client)(nil)

type initializeRequest struct {
	Amount int64  `json:"amount"`
	Email  string `json:"email"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
	} `json:"data"`
}

func (c *Client) Initialize(ctx context.Context, amountCents int64, email string) (*commands.CheckoutSession, error) {
	body, err := json.Marshal(initializeRequest{Amount: amountCents, Email: email})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode initialize request")
	}

	var resp initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, errs.Mark(fmt.Errorf("initialize rejected: %s", resp.Message), ErrDeclinedByGateway)
	}
	if resp.Data.Reference == "" || resp.Data.AuthorizationURL == "" {
		return nil, errs.Mark(errs.New("initialize response missing reference or url"), ErrRequestFailed)
	}

	return &commands.CheckoutSession{
		AuthorizationURL: resp.Data.AuthorizationURL,
		Reference:        resp.Data.Reference,
	}, nil
}

// Verify retries transient failures because a missed answer here stalls the
// whole confirmation poll. Terminal HTTP statuses are returned immediately.
func (c *Client) Verify(ctx context.Context, reference string) (commands.GatewayStatus, error) {
	const maxAttempts = 3

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		var resp verifyResponse
		err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &resp)
		if err != nil {
			if errors.Is(err, ErrDeclinedByGateway) {
				return "", err
			}
			lastErr = err
			continue
		}
		if !resp.Status {
			return "", errs.Mark(fmt.Errorf("verify rejected: %s", resp.Message), ErrDeclinedByGateway)
		}
		return mapGatewayStatus(resp.Data.Status), nil
	}
	return "", lastErr
}

func mapGatewayStatus(status string) commands.GatewayStatus {
	switch status {
	case "success":
		return commands.GatewaySuccess
	case "failed", "abandoned", "reversed":
		return commands.GatewayFailed
	default:
		return commands.GatewayPending
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errs.Wrap(err, "failed to build paystack request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errs.Mark(err, ErrRequestFailed)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return errs.Mark(err, ErrRequestFailed)
	}

	switch {
	case res.StatusCode >= 500:
		return errs.Mark(fmt.Errorf("paystack returned %d", res.StatusCode), ErrRequestFailed)
	case res.StatusCode >= 400:
		return errs.Mark(fmt.Errorf("paystack returned %d: %s", res.StatusCode, string(payload)), ErrDeclinedByGateway)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to decode paystack response"), ErrRequestFailed)
	}
	return nil
}
