package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the Stripe Checkout Sessions API. Amounts are expressed in
// major currency units (e.g. 14.90) and converted to the API's minor units
// here, at the boundary.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     "https://api.stripe.com/v1",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint; used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.apiURL = strings.TrimRight(u, "/")
	return c
}

// SessionRequest describes a checkout session to create.
type SessionRequest struct {
	Amount      float64
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Session is the created checkout session the client is redirected to.
type Session struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// SessionStatus is the provider-side state of a session.
// Status is open|complete|expired; PaymentStatus is paid|unpaid.
type SessionStatus struct {
	SessionID     string            `json:"session_id"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   float64           `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

type apiSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession creates a hosted checkout session for a one-off payment.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(toMinorUnits(req.Amount), 10))
	form.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var out apiSession
	if err := c.do(ctx, http.MethodPost, "/checkout/sessions", form, &out); err != nil {
		return nil, err
	}
	return &Session{SessionID: out.ID, URL: out.URL}, nil
}

// GetStatus fetches the current state of a session.
func (c *Client) GetStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	var out apiSession
	if err := c.do(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &SessionStatus{
		SessionID:     out.ID,
		Status:        out.Status,
		PaymentStatus: out.PaymentStatus,
		AmountTotal:   fromMinorUnits(out.AmountTotal),
		Currency:      out.Currency,
		Metadata:      out.Metadata,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("checkout: %s", apiErr.Error.Message)
		}
		return errors.New("checkout: unexpected status " + resp.Status)
	}
	return json.Unmarshal(raw, out)
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(v int64) float64 {
	return float64(v) / 100
}
