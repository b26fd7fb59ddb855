// Package trader simulates order execution. Orders never touch a real
// book: every result carries the simulated status. This is a constraint of
// the public-API-only integration, not a placeholder.
package trader

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

// SimulateTrader logs and acknowledges orders without executing them.
type SimulateTrader struct {
	pair   domain.Pair
	logger *zap.Logger
}

// NewSimulateTrader creates a new SimulateTrader.
func NewSimulateTrader(pair domain.Pair, logger *zap.Logger) *SimulateTrader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulateTrader{pair: pair, logger: logger}
}

// ExecuteAnalysis simulates the trade an analysis recommends.
func (t *SimulateTrader) ExecuteAnalysis(ctx context.Context, analysis *domain.TradingAnalysis) (*domain.TradeResult, error) {
	switch analysis.Intention {
	case domain.IntentionBuy:
		return t.PlaceBuyOrder(ctx, analysis.Amount)
	case domain.IntentionSell:
		return t.PlaceSellOrder(ctx, analysis.Amount)
	default:
		return nil, fmt.Errorf("analysis intention %s is not tradable", analysis.Intention)
	}
}

// PlaceBuyOrder simulates a market buy.
func (t *SimulateTrader) PlaceBuyOrder(ctx context.Context, amount decimal.Decimal) (*domain.TradeResult, error) {
	return t.place(ctx, "BUY", amount)
}

// PlaceSellOrder simulates a market sell.
func (t *SimulateTrader) PlaceSellOrder(ctx context.Context, amount decimal.Decimal) (*domain.TradeResult, error) {
	return t.place(ctx, "SELL", amount)
}

func (t *SimulateTrader) place(ctx context.Context, side string, amount decimal.Decimal) (*domain.TradeResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Errorf("%s amount must be positive, got %s", side, amount.String())
	}

	orderID := uuid.New().String()
	symbol := t.pair.Symbol()

	t.logger.Info("simulating order",
		zap.String("symbol", symbol),
		zap.String("side", side),
		zap.String("amount", amount.String()),
		zap.String("order_id", orderID))

	return &domain.TradeResult{
		Status:   domain.TradeStatusSimulated,
		Message:  fmt.Sprintf("%s order simulated: %s %s", side, amount.String(), symbol),
		Symbol:   symbol,
		Side:     side,
		Quantity: amount,
		OrderID:  orderID,
	}, nil
}
