// Package market provides kline collection and formatting for LLM prompts.
package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

// KlineProvider fetches candle data for a trading pair.
type KlineProvider interface {
	GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error)
}

// Collector wraps a KlineProvider with the fetch shapes the handlers need.
type Collector struct {
	provider KlineProvider
	pair     domain.Pair
}

// NewCollector creates a collector for the pair.
func NewCollector(provider KlineProvider, pair domain.Pair) *Collector {
	return &Collector{provider: provider, pair: pair}
}

// DailyHistory fetches one daily candle per day for the last days.
func (c *Collector) DailyHistory(ctx context.Context, days int) ([]domain.MarketCandle, error) {
	return c.provider.GetKlines(ctx, c.pair, "1d", days)
}

// IntradayHistory fetches 4h candles covering roughly the last days.
func (c *Collector) IntradayHistory(ctx context.Context, days int) ([]domain.MarketCandle, error) {
	return c.provider.GetKlines(ctx, c.pair, "4h", days*6)
}

// FormatForLLM renders candles as the price table the analysis prompts embed.
func FormatForLLM(candles []domain.MarketCandle) string {
	if len(candles) == 0 {
		return "No price data available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "BTC Price History (last %d candles):\n", len(candles))
	b.WriteString("Date | Open | High | Low | Close | Volume\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")

	for _, c := range candles {
		fmt.Fprintf(&b, "%s | $%s | $%s | $%s | $%s | %s\n",
			c.OpenTime.Format("2006-01-02 15:04"),
			c.Open.StringFixed(2),
			c.High.StringFixed(2),
			c.Low.StringFixed(2),
			c.Close.StringFixed(2),
			c.Volume.StringFixed(2))
	}

	if len(candles) > 1 {
		first := candles[0].Close
		last := candles[len(candles)-1].Close
		change := last.Sub(first)

		changePct := decimal.Zero
		if !first.IsZero() {
			changePct = change.Div(first).Mul(decimal.NewFromInt(100))
		}

		high := candles[0].High
		low := candles[0].Low
		for _, c := range candles[1:] {
			if c.High.GreaterThan(high) {
				high = c.High
			}
			if c.Low.LessThan(low) {
				low = c.Low
			}
		}

		fmt.Fprintf(&b, "\nPeriod Change: $%s (%s%%)\n", change.StringFixed(2), changePct.StringFixed(2))
		fmt.Fprintf(&b, "Highest: $%s\n", high.StringFixed(2))
		fmt.Fprintf(&b, "Lowest: $%s\n", low.StringFixed(2))
	}

	return b.String()
}
