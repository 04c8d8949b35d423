package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Error is a backend rejection: a non-success HTTP status with the message the
// server included in its JSON body, when it included one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// ErrNotFound marks a lookup of an id the backend does not know.
var ErrNotFound = errors.New("api: not found")

// Client is the single typed client for the payments backend. Every screen
// goes through it; no screen builds its own HTTP request.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient builds the HTTP client wrapper.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Login exchanges credentials for an identity and a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (User, string, error) {
	body := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Me resolves the identity behind a bearer token.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// ListPayments fetches payments, narrowed server-side by the filter. Nil
// filter fields are omitted from the query string.
func (c *Client) ListPayments(ctx context.Context, token string, filter PaymentFilter) ([]Payment, error) {
	path := "/payments"
	params := url.Values{}
	if filter.Status != nil {
		params.Set("status", *filter.Status)
	}
	if filter.Method != nil {
		params.Set("method", *filter.Method)
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	payments := []Payment{}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPayment fetches a single payment by id.
func (c *Client) GetPayment(ctx context.Context, token string, id int64) (Payment, error) {
	var payment Payment
	err := c.do(ctx, http.MethodGet, "/payments/"+strconv.FormatInt(id, 10), token, nil, &payment)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return Payment{}, fmt.Errorf("%w: payment %d", ErrNotFound, id)
		}
		return Payment{}, err
	}
	return payment, nil
}

// CreatePayment submits a new payment request.
func (c *Client) CreatePayment(ctx context.Context, token string, req CreatePaymentRequest) error {
	return c.do(ctx, http.MethodPost, "/payments", token, req, nil)
}

// Stats fetches the server-computed statistics snapshot.
func (c *Client) Stats(ctx context.Context, token string) (StatsSnapshot, error) {
	var stats StatsSnapshot
	if err := c.do(ctx, http.MethodGet, "/payments/stats", token, nil, &stats); err != nil {
		return StatsSnapshot{}, err
	}
	return stats, nil
}

// do runs one request/response cycle: JSON body out, bearer header when a
// token is supplied, JSON decode into out when the caller wants a payload.
// Non-2xx statuses become *Error with the backend message when present.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			apiErr.Message = payload.Message
		}
		c.logger.Warn("backend returned non-success",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
