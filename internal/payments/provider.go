package payments

import "context"

// Charge outcome statuses reported by the provider.
const (
	StatusSucceeded      = "succeeded"
	StatusRequiresAction = "requires_action"
)

// NextActionUseSDK marks a pending intent that the client must confirm
// through the provider's browser SDK.
const NextActionUseSDK = "use_stripe_sdk"

// ChargeRequest describes one authorize-and-capture attempt. Amount is in
// integer minor units; the server never sees raw card data, only the
// client-tokenized payment method id.
type ChargeRequest struct {
	AmountCents     int64
	Currency        string
	PaymentMethodID string
	ReturnURL       string
}

// Intent is the provider's view of a charge attempt.
type Intent struct {
	ID             string
	Status         string
	ClientSecret   string
	NextActionType string
}

// RequiresClientAction reports whether the client must complete the charge
// through the provider SDK before it can settle.
func (i *Intent) RequiresClientAction() bool {
	return i.Status == StatusRequiresAction && i.NextActionType == NextActionUseSDK
}

// Provider captures charges with the external payment service.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, req ChargeRequest) (*Intent, error)
}
