package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// StripeClient calls the Stripe payment-intents API over HTTP.
type StripeClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// APIError represents a Stripe error response.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("stripe: request failed with status %d", e.Status)
}

// NewStripeClient constructs a Stripe payment-intents client.
func NewStripeClient(secretKey string) *StripeClient {
	return &StripeClient{
		baseURL:    defaultStripeBaseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeClientWithBaseURL is used by tests to point the client at a stub server.
func NewStripeClientWithBaseURL(secretKey, baseURL string) *StripeClient {
	c := NewStripeClient(secretKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type intentResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
	NextAction   *struct {
		Type string `json:"type"`
	} `json:"next_action"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// CreatePaymentIntent issues a manual-confirmation authorize-and-capture request.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, req ChargeRequest) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", req.Currency)
	form.Set("payment_method", req.PaymentMethodID)
	form.Set("confirmation_method", "manual")
	form.Set("confirm", "true")
	if req.ReturnURL != "" {
		form.Set("return_url", req.ReturnURL)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("stripe: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("stripe: read response: %w", err)
	}

	var decoded intentResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("stripe: decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decoded.Error != nil {
			apiErr.Message = decoded.Error.Message
			apiErr.Code = decoded.Error.Code
		}
		return nil, apiErr
	}

	intent := &Intent{
		ID:           decoded.ID,
		Status:       decoded.Status,
		ClientSecret: decoded.ClientSecret,
	}
	if decoded.NextAction != nil {
		intent.NextActionType = decoded.NextAction.Type
	}
	return intent, nil
}
