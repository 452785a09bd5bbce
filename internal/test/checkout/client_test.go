package checkout_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"alibi-backend/internal/checkout"
)

func TestClient_CreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]string
		err := json.NewDecoder(r.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "plan-basic", body["plan_id"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"session_id": "cs_123",
			"url":        "https://pay.example.com/cs_123",
			"status":     "open",
		})
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "test-key")
	session, err := client.CreateSession("plan-basic", "https://app.example.com/success", "https://app.example.com/cancel")

	assert.NoError(t, err)
	assert.Equal(t, "cs_123", session.SessionID)
	assert.Equal(t, "https://pay.example.com/cs_123", session.URL)
	assert.False(t, session.Paid())
}

func TestClient_CreateSession_IncompleteResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"session_id": "cs_123"})
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "test-key")
	session, err := client.CreateSession("plan-basic", "", "")

	assert.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "incomplete session")
}

func TestClient_GetSession_Paid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/checkout/sessions/cs_123", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"session_id":     "cs_123",
			"url":            "https://pay.example.com/cs_123",
			"status":         "complete",
			"payment_status": "paid",
			"plan_id":        "plan-basic",
			"plan_name":      "Basic",
		})
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "test-key")
	session, err := client.GetSession("cs_123")

	assert.NoError(t, err)
	assert.True(t, session.Paid())
	assert.Equal(t, "plan-basic", session.PlanID)
}

func TestClient_GetSession_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such session"}`))
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "test-key")
	session, err := client.GetSession("cs_missing")

	assert.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_GetSession_SubscriptionEnded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"session_id":          "cs_123",
			"url":                 "https://pay.example.com/cs_123",
			"status":              "complete",
			"payment_status":      "paid",
			"subscription_status": "cancelled",
		})
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "test-key")
	session, err := client.GetSession("cs_123")

	assert.NoError(t, err)
	assert.True(t, session.Ended())
}

func TestSession_EndedRequiresProviderCancellation(t *testing.T) {
	// A session the provider still reports active must not read as ended,
	// whatever a webhook payload claimed.
	active := checkout.Session{Status: "complete", PaymentStatus: "paid", SubscriptionStatus: "active"}
	assert.False(t, active.Ended())

	unset := checkout.Session{Status: "complete", PaymentStatus: "paid"}
	assert.False(t, unset.Ended())

	cancelled := checkout.Session{Status: "complete", PaymentStatus: "paid", SubscriptionStatus: "cancelled"}
	assert.True(t, cancelled.Ended())
}

func TestClient_CancelSubscription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/checkout/sessions/cs_123/cancel", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "test-key")
	err := client.CancelSubscription("cs_123")

	assert.NoError(t, err)
}

func TestClient_RetryWithBackoff(t *testing.T) {
	client := checkout.NewClient("http://localhost", "test-key")

	callCount := 0
	err := client.RetryWithBackoff(func() error {
		callCount++
		if callCount < 2 {
			return assert.AnError
		}
		return nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 2, callCount)
}

func TestClient_RetryWithBackoff_Exhausted(t *testing.T) {
	client := checkout.NewClient("http://localhost", "test-key")

	callCount := 0
	err := client.RetryWithBackoff(func() error {
		callCount++
		return assert.AnError
	}, 3)

	assert.Error(t, err)
	assert.Equal(t, 3, callCount)
	assert.Contains(t, err.Error(), "failed after 3 retries")
}
