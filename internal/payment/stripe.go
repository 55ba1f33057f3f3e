package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"

	"github.com/st4l1nR/nike-api/internal/apperr"
)

// Intent is the slice of a provider payment intent the storefront needs.
// It is never persisted; only the client secret travels back to the caller.
type Intent struct {
	ID           string
	ClientSecret string
}

type StripeConfig struct {
	SecretKey string
}

func (c StripeConfig) Validate() error {
	if c.SecretKey == "" {
		return errors.New("stripe secret key is required")
	}
	return nil
}

type StripeClient struct {
	log *zap.Logger
}

// NewStripeClient configures the global stripe client with the secret key.
func NewStripeClient(cfg StripeConfig, log *zap.Logger) (*StripeClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stripe.Key = cfg.SecretKey
	return &StripeClient{log: log}, nil
}

// CreateIntent creates a card payment intent for the given amount in major
// currency units. No idempotency key is sent: a duplicate call creates a
// duplicate intent.
func (c *StripeClient) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(MinorUnits(amount)),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			c.log.Error("stripe payment intent failed",
				zap.String("stripe_code", string(stripeErr.Code)),
				zap.Error(err))
			return Intent{}, apperr.Provider("payment provider rejected the request: %s", stripeErr.Code)
		}
		c.log.Error("stripe payment intent failed", zap.Error(err))
		return Intent{}, apperr.Provider("payment provider unavailable")
	}

	c.log.Info("created payment intent", zap.String("intent_id", pi.ID))
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// MinorUnits converts a major-unit amount to the provider's integer minor
// units (25.50 -> 2550), rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
