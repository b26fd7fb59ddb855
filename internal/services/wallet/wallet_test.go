package wallet

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

type fakePricer struct {
	price decimal.Decimal
	err   error
}

func (f *fakePricer) GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	return f.price, f.err
}

func TestPortfolio(t *testing.T) {
	svc := NewService(&fakePricer{price: decimal.NewFromInt(50000)}, domain.BTCUSDT)

	got, err := svc.Portfolio(context.Background())
	require.NoError(t, err)

	// 0.001 BTC * 50000 = 50 USDT, total 1050
	assert.True(t, got.BTCValueUSDT.Equal(decimal.NewFromInt(50)))
	assert.True(t, got.TotalValueUSDT.Equal(decimal.NewFromInt(1050)))
	assert.True(t, got.USDTBalance.Equal(decimal.NewFromInt(1000)))

	// allocations sum to 100
	sum := got.BTCAllocation.Add(got.USDTAllocation)
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThan(decimal.NewFromFloat(0.0001)),
		"allocations sum to %s", sum)
}

func TestPortfolioPricerError(t *testing.T) {
	svc := NewService(&fakePricer{err: errors.New("exchange down")}, domain.BTCUSDT)

	_, err := svc.Portfolio(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange down")
}

func TestBuyingPower(t *testing.T) {
	svc := NewService(&fakePricer{price: decimal.NewFromInt(50000)}, domain.BTCUSDT)

	got, err := svc.BuyingPower(context.Background())
	require.NoError(t, err)

	// 1000 * 0.999 = 999 usable
	assert.True(t, got.UsableUSDT.Equal(decimal.NewFromInt(999)))
	assert.True(t, got.MaxBTCBuyable.Equal(decimal.NewFromFloat(0.01998)))
}

func TestBuyingPowerZeroPrice(t *testing.T) {
	svc := NewService(&fakePricer{price: decimal.Zero}, domain.BTCUSDT)

	got, err := svc.BuyingPower(context.Background())
	require.NoError(t, err)

	assert.True(t, got.MaxBTCBuyable.IsZero())
}

func TestDemoBalances(t *testing.T) {
	svc := NewService(&fakePricer{}, domain.BTCUSDT)

	btc, err := svc.BTCBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, btc.Equal(decimal.NewFromFloat(0.001)))

	usdt, err := svc.USDTBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, usdt.Equal(decimal.NewFromInt(1000)))
}
