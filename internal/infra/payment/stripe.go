// Package payment integrates the Stripe payment intent API.
package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/pkg/errs"
	"cedra-backend/internal/usecase/commands"
)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{api: api}
}

var _ commands.PaymentGateway = (*StripeGateway)(nil)

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String(uuid.NewString()),
		},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", errs.Wrap(err, "failed to create payment intent")
	}
	return intent.ClientSecret, nil
}
