// Package checkout talks to the hosted checkout provider. The provider owns
// the payment page; this client only creates sessions, reads their state
// back, and flags subscriptions for cancellation.
package checkout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type createSessionRequest struct {
	PlanID     string `json:"plan_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type Session struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	// Status is "open" until the customer finishes or abandons the hosted
	// page, then "complete" or "expired".
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"` // "unpaid" or "paid"
	// SubscriptionStatus is the provider's view of the subscription the
	// session created: empty or "active" while it runs, "cancelled" once the
	// provider has ended it.
	SubscriptionStatus string    `json:"subscription_status"`
	PlanID             string    `json:"plan_id"`
	PlanName           string    `json:"plan_name"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
}

func (s *Session) Paid() bool {
	return s.Status == "complete" && s.PaymentStatus == "paid"
}

// Ended reports that the provider has terminated the subscription behind this
// session.
func (s *Session) Ended() bool {
	return s.SubscriptionStatus == "cancelled"
}

// CreateSession asks the provider for a hosted checkout page.
func (c *Client) CreateSession(planID, successURL, cancelURL string) (*Session, error) {
	body, err := json.Marshal(createSessionRequest{
		PlanID:     planID,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var session Session
	if err := c.do(http.MethodPost, "checkout/sessions", body, &session); err != nil {
		return nil, err
	}

	if session.SessionID == "" || session.URL == "" {
		return nil, fmt.Errorf("provider returned incomplete session: %+v", session)
	}

	return &session, nil
}

// GetSession reads a session's current state from the provider.
func (c *Client) GetSession(sessionID string) (*Session, error) {
	var session Session
	if err := c.do(http.MethodGet, "checkout/sessions/"+sessionID, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CancelSubscription flags the plan attached to a session for cancellation at
// period end. The subscription stays active until then.
func (c *Client) CancelSubscription(sessionID string) error {
	return c.do(http.MethodPost, "checkout/sessions/"+sessionID+"/cancel", []byte("{}"), nil)
}

func (c *Client) do(method, path string, body []byte, out any) error {
	url := strings.TrimSuffix(c.baseURL, "/") + "/" + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d, body: %s", method, path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
		}
	}

	return nil
}

// RetryWithBackoff executes a function with exponential backoff retry logic.
func (c *Client) RetryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
