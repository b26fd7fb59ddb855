package market

import (
	"context"
	"fmt"

	bybit "github.com/hirokisan/bybit/v2"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

// BybitKlineProvider implements KlineProvider for Bybit.
type BybitKlineProvider struct {
	client *bybit.Client
}

// NewBybitKlineProvider creates a new Bybit kline provider.
func NewBybitKlineProvider(client *bybit.Client) *BybitKlineProvider {
	return &BybitKlineProvider{client: client}
}

// GetKlines fetches kline data from Bybit.
//
// TODO: map bybit V5 kline intervals to the collector's interval strings;
// until then history-backed handlers require the binance platform.
func (p *BybitKlineProvider) GetKlines(context.Context, domain.Pair, string, int) ([]domain.MarketCandle, error) {
	return nil, fmt.Errorf("bybit kline history is not yet supported - use the binance platform for analysis handlers")
}
