package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chargeRequest() ChargeRequest {
	return ChargeRequest{
		AmountCents:     4999,
		Currency:        "usd",
		PaymentMethodID: "pm_card_visa",
		ReturnURL:       "https://app.example.com/return",
	}
}

func TestCreatePaymentIntentSendsForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "4999", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "pm_card_visa", r.PostForm.Get("payment_method"))
		assert.Equal(t, "manual", r.PostForm.Get("confirmation_method"))
		assert.Equal(t, "true", r.PostForm.Get("confirm"))
		assert.Equal(t, "https://app.example.com/return", r.PostForm.Get("return_url"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","status":"succeeded","client_secret":"pi_123_secret"}`))
	}))
	defer server.Close()

	client := NewStripeClientWithBaseURL("sk_test_key", server.URL)

	intent, err := client.CreatePaymentIntent(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, StatusSucceeded, intent.Status)
	assert.False(t, intent.RequiresClientAction())
}

func TestCreatePaymentIntentRequiresAction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "pi_456",
			"status": "requires_action",
			"client_secret": "pi_456_secret",
			"next_action": {"type": "use_stripe_sdk"}
		}`))
	}))
	defer server.Close()

	client := NewStripeClientWithBaseURL("sk_test_key", server.URL)

	intent, err := client.CreatePaymentIntent(context.Background(), chargeRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusRequiresAction, intent.Status)
	assert.Equal(t, NextActionUseSDK, intent.NextActionType)
	assert.Equal(t, "pi_456_secret", intent.ClientSecret)
	assert.True(t, intent.RequiresClientAction())
}

func TestCreatePaymentIntentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined.","code":"card_declined"}}`))
	}))
	defer server.Close()

	client := NewStripeClientWithBaseURL("sk_test_key", server.URL)

	_, err := client.CreatePaymentIntent(context.Background(), chargeRequest())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusPaymentRequired, apiErr.Status)
	assert.Equal(t, "Your card was declined.", apiErr.Message)
	assert.Equal(t, "card_declined", apiErr.Code)
}

func TestCreatePaymentIntentOmitsEmptyReturnURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		_, present := r.PostForm["return_url"]
		assert.False(t, present)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_789","status":"succeeded"}`))
	}))
	defer server.Close()

	client := NewStripeClientWithBaseURL("sk_test_key", server.URL)

	req := chargeRequest()
	req.ReturnURL = ""
	_, err := client.CreatePaymentIntent(context.Background(), req)
	require.NoError(t, err)
}
