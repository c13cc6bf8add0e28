package commands

import (
	"context"

	"cedra-backend/internal/pkg/config"
	"cedra-backend/internal/pkg/errs"
)

// MinimumChargeAmount is the smallest chargeable amount in minor currency
// units; processors reject anything below it.
const MinimumChargeAmount = 50

type CheckoutCommands interface {
	// CreatePaymentIntent registers an intent for the given amount and
	// returns the client secret the frontend confirms with.
	CreatePaymentIntent(ctx context.Context, amount int64) (string, error)
}

type checkoutCommandsImpl struct {
	gateway  PaymentGateway
	currency string
}

func NewCheckoutCommands(gateway PaymentGateway, cfg config.StripeConfig) CheckoutCommands {
	return &checkoutCommandsImpl{
		gateway:  gateway,
		currency: cfg.Currency,
	}
}

func (c *checkoutCommandsImpl) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	if amount < MinimumChargeAmount {
		return "", errs.ErrAmountTooLow
	}
	return c.gateway.CreateIntent(ctx, amount, c.currency)
}
