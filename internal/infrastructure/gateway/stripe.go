package gateway

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"go.uber.org/zap"

	domainGateway "schoolhub/internal/domain/gateway"
)

// Stripe amounts are integer minor units.
var centsPerUnit = decimal.NewFromInt(100)

// StripeGateway charges card tokens through Stripe payment intents.
type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway configures the global Stripe client with the secret
// key and returns the gateway.
func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{logger: logger}
}

// Name returns the gateway name.
func (g *StripeGateway) Name() string {
	return "stripe"
}

// Charge creates and confirms a payment intent against the stored card.
func (g *StripeGateway) Charge(ctx context.Context, req *domainGateway.ChargeRequest) (*domainGateway.ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount.Mul(centsPerUnit).IntPart()),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.Token),
		Description:   stripe.String(req.Description),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error("Stripe charge failed",
			zap.String("currency", req.Currency),
			zap.Error(err))

		if stripeErr, ok := err.(*stripe.Error); ok {
			return nil, &domainGateway.Error{
				Code:    string(stripeErr.Code),
				Message: stripeErr.Msg,
			}
		}
		return nil, err
	}

	status := domainGateway.ChargeStatusFailed
	if intent.Status == stripe.PaymentIntentStatusSucceeded {
		status = domainGateway.ChargeStatusSucceeded
	}

	g.logger.Info("Stripe charge completed",
		zap.String("payment_intent_id", intent.ID),
		zap.String("status", string(intent.Status)))

	return &domainGateway.ChargeResult{
		ChargeID: intent.ID,
		Status:   status,
	}, nil
}
