package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	domainGateway "schoolhub/internal/domain/gateway"
)

// MockGateway approves every charge without touching a real processor.
// Tokens prefixed with "fail" are declined, which lets demos exercise the
// failure path. Selected with the mock_payments config flag.
type MockGateway struct {
	logger *zap.Logger
	seq    atomic.Int64
}

func NewMockGateway(logger *zap.Logger) *MockGateway {
	return &MockGateway{logger: logger}
}

// Name returns the gateway name.
func (g *MockGateway) Name() string {
	return "mock"
}

// Charge approves or declines based on the token prefix.
func (g *MockGateway) Charge(ctx context.Context, req *domainGateway.ChargeRequest) (*domainGateway.ChargeResult, error) {
	if strings.HasPrefix(req.Token, "fail") {
		g.logger.Info("Mock gateway declining charge",
			zap.String("amount", req.Amount.String()))
		return nil, &domainGateway.Error{
			Code:    "card_declined",
			Message: "mock gateway declined the charge",
		}
	}

	chargeID := fmt.Sprintf("mock_ch_%06d", g.seq.Add(1))
	g.logger.Info("Mock gateway approved charge",
		zap.String("charge_id", chargeID),
		zap.String("amount", req.Amount.String()),
		zap.String("currency", req.Currency))

	return &domainGateway.ChargeResult{
		ChargeID: chargeID,
		Status:   domainGateway.ChargeStatusSucceeded,
	}, nil
}
