package gateway

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Charge statuses reported by a gateway.
const (
	ChargeStatusSucceeded = "succeeded"
	ChargeStatusFailed    = "failed"
)

// ChargeRequest asks a gateway to collect money with a stored card token.
type ChargeRequest struct {
	Token       string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// ChargeResult is the gateway's answer to a charge attempt.
type ChargeResult struct {
	ChargeID string
	Status   string
}

// CardGateway charges stored card tokens. Implementations must be safe
// for concurrent use.
type CardGateway interface {
	Name() string
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}

// Error is a failure reported by the gateway itself, as opposed to a
// transport failure reaching it.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway error [%s]: %s", e.Code, e.Message)
}
