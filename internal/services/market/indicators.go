package market

import (
	"fmt"
	"strings"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

// IndicatorSnapshot holds the latest technical indicator values computed
// from a candle window. Fed to the LLM by the technical analysis handlers.
type IndicatorSnapshot struct {
	EMA20  decimal.Decimal
	EMA50  decimal.Decimal
	MACD   decimal.Decimal
	RSI14  decimal.Decimal
	Candle domain.MarketCandle
}

// ComputeIndicators calculates EMA20/EMA50, MACD and RSI14 over the candle
// window and returns the most recent values.
func ComputeIndicators(candles []domain.MarketCandle) (*IndicatorSnapshot, error) {
	if len(candles) < 51 {
		return nil, fmt.Errorf("not enough candles for indicators: need 51, got %d", len(candles))
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i], _ = c.Close.Float64()
	}

	ema20 := lastValue(helper.ChanToSlice(trend.NewEmaWithPeriod[float64](20).Compute(helper.SliceToChan(closes))))
	ema50 := lastValue(helper.ChanToSlice(trend.NewEmaWithPeriod[float64](50).Compute(helper.SliceToChan(closes))))
	rsi14 := lastValue(helper.ChanToSlice(momentum.NewRsiWithPeriod[float64](14).Compute(helper.SliceToChan(closes))))

	macdChan, signalChan := trend.NewMacd[float64]().Compute(helper.SliceToChan(closes))
	// the unused signal channel must be drained or Compute blocks
	go func() {
		for range signalChan {
		}
	}()
	macd := lastValue(helper.ChanToSlice(macdChan))

	return &IndicatorSnapshot{
		EMA20:  decimal.NewFromFloat(ema20),
		EMA50:  decimal.NewFromFloat(ema50),
		MACD:   decimal.NewFromFloat(macd),
		RSI14:  decimal.NewFromFloat(rsi14),
		Candle: candles[len(candles)-1],
	}, nil
}

// FormatForLLM renders the snapshot as the indicator block prepended to
// technical analysis prompts.
func (s *IndicatorSnapshot) FormatForLLM() string {
	var b strings.Builder
	b.WriteString("Technical Indicators (latest candle):\n")
	fmt.Fprintf(&b, "Close: $%s\n", s.Candle.Close.StringFixed(2))
	fmt.Fprintf(&b, "EMA20: %s\n", s.EMA20.StringFixed(2))
	fmt.Fprintf(&b, "EMA50: %s\n", s.EMA50.StringFixed(2))
	fmt.Fprintf(&b, "MACD: %s\n", s.MACD.StringFixed(4))
	fmt.Fprintf(&b, "RSI14: %s\n", s.RSI14.StringFixed(2))
	return b.String()
}

func lastValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
