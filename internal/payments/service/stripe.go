package service

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// IntentCreator creates a payment intent with the provider and returns its
// external reference.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error)
}

type stripeIntentCreator struct{}

// NewStripeIntentCreator configures the global Stripe key and returns the
// live intent creator.
func NewStripeIntentCreator(apiKey string) IntentCreator {
	stripe.Key = apiKey
	return &stripeIntentCreator{}
}

func (c *stripeIntentCreator) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ID, nil
}
