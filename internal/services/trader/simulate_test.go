package trader

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

func TestExecuteAnalysis(t *testing.T) {
	tr := NewSimulateTrader(domain.BTCUSDT, nil)

	tests := []struct {
		name      string
		intention domain.Intention
		amount    decimal.Decimal
		wantSide  string
		wantErr   bool
	}{
		{"buy", domain.IntentionBuy, decimal.NewFromFloat(0.005), "BUY", false},
		{"sell", domain.IntentionSell, decimal.NewFromFloat(0.002), "SELL", false},
		{"consult is not tradable", domain.IntentionConsult, decimal.NewFromFloat(0.005), "", true},
		{"nothing is not tradable", domain.IntentionNothing, decimal.NewFromFloat(0.005), "", true},
		{"zero amount rejected", domain.IntentionBuy, decimal.Zero, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tr.ExecuteAnalysis(context.Background(), &domain.TradingAnalysis{
				Intention: tt.intention,
				Amount:    tt.amount,
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, domain.TradeStatusSimulated, result.Status)
			assert.Equal(t, tt.wantSide, result.Side)
			assert.Equal(t, "BTCUSDT", result.Symbol)
			assert.True(t, result.Quantity.Equal(tt.amount))
			assert.NotEmpty(t, result.OrderID)
		})
	}
}

func TestOrderIDsAreUnique(t *testing.T) {
	tr := NewSimulateTrader(domain.BTCUSDT, nil)
	amount := decimal.NewFromFloat(0.001)

	first, err := tr.PlaceBuyOrder(context.Background(), amount)
	require.NoError(t, err)
	second, err := tr.PlaceBuyOrder(context.Background(), amount)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
}
