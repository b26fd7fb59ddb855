package selector

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

type fakeClassifier struct {
	result *domain.IntentClassification
}

func (f *fakeClassifier) Classify(ctx context.Context, userMessage string) *domain.IntentClassification {
	return f.result
}

type fakePricer struct {
	price decimal.Decimal
	err   error
}

func (f *fakePricer) GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error) {
	return f.price, f.err
}

type fakeWallet struct {
	usdt      decimal.Decimal
	portfolio *domain.PortfolioSnapshot
	power     *domain.BuyingPower
	err       error
}

func (f *fakeWallet) USDTBalance(ctx context.Context) (decimal.Decimal, error) {
	return f.usdt, f.err
}

func (f *fakeWallet) Portfolio(ctx context.Context) (*domain.PortfolioSnapshot, error) {
	return f.portfolio, f.err
}

func (f *fakeWallet) BuyingPower(ctx context.Context) (*domain.BuyingPower, error) {
	return f.power, f.err
}

type fakeCollector struct {
	candles []domain.MarketCandle
	err     error
}

func (f *fakeCollector) DailyHistory(ctx context.Context, days int) ([]domain.MarketCandle, error) {
	return f.candles, f.err
}

func (f *fakeCollector) IntradayHistory(ctx context.Context, days int) ([]domain.MarketCandle, error) {
	return f.candles, f.err
}

type fakeAnalyzer struct {
	analysis *domain.TradingAnalysis
	err      error
	provider domain.Provider
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, userPrompt string) (*domain.TradingAnalysis, error) {
	return f.analysis, f.err
}

func (f *fakeAnalyzer) Provider() domain.Provider { return f.provider }

func classification(intent domain.Intent) *domain.IntentClassification {
	return &domain.IntentClassification{
		Intent:     intent,
		Confidence: 0.9,
		Reasoning:  "test classification",
	}
}

func sampleCandles(n int) []domain.MarketCandle {
	candles := make([]domain.MarketCandle, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		price := decimal.NewFromInt(int64(50000 + i*100))
		candles[i] = domain.MarketCandle{
			OpenTime:  base.AddDate(0, 0, i),
			Open:      price,
			High:      price.Add(decimal.NewFromInt(500)),
			Low:       price.Sub(decimal.NewFromInt(500)),
			Close:     price.Add(decimal.NewFromInt(100)),
			Volume:    decimal.NewFromInt(1000),
			CloseTime: base.AddDate(0, 0, i+1),
		}
	}
	return candles
}

func newTestSelector(c *fakeClassifier, a *fakeAnalyzer, p *fakePricer, w *fakeWallet, col *fakeCollector) *Selector {
	return New(c, a, nil, p, w, col, domain.BTCUSDT, 15, nil)
}

func TestProcessBTCPriceInfo(t *testing.T) {
	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentBTCPriceInfo)},
		&fakeAnalyzer{provider: domain.ProviderOllama},
		&fakePricer{price: decimal.NewFromFloat(65432.10)},
		&fakeWallet{},
		&fakeCollector{candles: sampleCandles(3)},
	)

	envelope := sel.Process(context.Background(), "what's the BTC price?")
	require.NotNil(t, envelope)

	assert.True(t, envelope.Success)
	assert.Equal(t, "btc_price_info", envelope.ResponseType)
	assert.Contains(t, envelope.Message, "₿ Current BTC Price: $65432.10")
	require.NotNil(t, envelope.IntentInfo)
	assert.Equal(t, domain.IntentBTCPriceInfo, envelope.IntentInfo.Intent)
	assert.Equal(t, "btc_price_info", envelope.IntentInfo.Handler)
}

func TestProcessPricerFailure(t *testing.T) {
	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentBTCPriceInfo)},
		&fakeAnalyzer{provider: domain.ProviderOllama},
		&fakePricer{err: errors.New("exchange unreachable")},
		&fakeWallet{},
		&fakeCollector{},
	)

	envelope := sel.Process(context.Background(), "price?")
	require.NotNil(t, envelope)

	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Message, "❌ Error fetching BTC price")
	assert.Contains(t, envelope.Message, "exchange unreachable")
}

func TestProcessUnmappedIntentFallsToErrorRecovery(t *testing.T) {
	// price_alerts is a known intent without a handler
	unmapped := []domain.Intent{
		domain.IntentPriceAlerts,
		domain.IntentTradeHistory,
		domain.IntentStopLossManagement,
	}

	for _, intent := range unmapped {
		t.Run(intent.String(), func(t *testing.T) {
			sel := newTestSelector(
				&fakeClassifier{result: classification(intent)},
				&fakeAnalyzer{provider: domain.ProviderOllama},
				&fakePricer{},
				&fakeWallet{},
				&fakeCollector{},
			)

			envelope := sel.Process(context.Background(), "set an alert at 70k")
			require.NotNil(t, envelope)

			assert.False(t, envelope.Success)
			assert.Equal(t, "error_recovery", envelope.ResponseType)
			require.NotNil(t, envelope.IntentInfo)
			assert.Equal(t, intent, envelope.IntentInfo.Intent)
			assert.Equal(t, "error_recovery", envelope.IntentInfo.Handler)
		})
	}
}

func TestProcessErrorRecoveryIntent(t *testing.T) {
	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentErrorRecovery)},
		&fakeAnalyzer{provider: domain.ProviderOllama},
		&fakePricer{},
		&fakeWallet{},
		&fakeCollector{},
	)

	envelope := sel.Process(context.Background(), "asdfgh")

	assert.False(t, envelope.Success)
	assert.Equal(t, "error_recovery", envelope.ResponseType)
	assert.Contains(t, envelope.Message, "didn't quite understand")
}

func TestProcessRecoversFromPanic(t *testing.T) {
	// nil portfolio dereferenced in the handler must not escape Process
	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentPortfolioValue)},
		&fakeAnalyzer{provider: domain.ProviderOllama},
		&fakePricer{},
		&fakeWallet{portfolio: nil},
		&fakeCollector{},
	)

	var envelope *domain.ResponseEnvelope
	require.NotPanics(t, func() {
		envelope = sel.Process(context.Background(), "portfolio?")
	})
	require.NotNil(t, envelope)

	assert.False(t, envelope.Success)
	assert.Equal(t, "error_recovery", envelope.ResponseType)
	require.NotNil(t, envelope.IntentInfo)
	assert.Equal(t, domain.IntentErrorRecovery, envelope.IntentInfo.Intent)
}

func TestProcessTradingDecisionRequiresConfirmation(t *testing.T) {
	analysis := &domain.TradingAnalysis{
		Intention:       domain.IntentionBuy,
		Analysis:        "strong uptrend",
		SuggestedAction: "buy the dip",
		Amount:          decimal.NewFromFloat(0.005),
		Confidence:      0.8,
		RiskLevel:       domain.RiskLow,
	}

	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentTradingDecision)},
		&fakeAnalyzer{analysis: analysis, provider: domain.ProviderOllama},
		&fakePricer{},
		&fakeWallet{},
		&fakeCollector{candles: sampleCandles(15)},
	)

	envelope := sel.Process(context.Background(), "should I buy BTC now?")

	assert.True(t, envelope.Success)
	assert.True(t, envelope.RequiresTradeConfirmation)
	assert.Contains(t, envelope.Message, "🔄 Suggested Action: BUY 0.005 BTC")
	require.NotNil(t, envelope.Analysis)
	assert.Equal(t, domain.IntentionBuy, envelope.Analysis.Intention)
}

func TestProcessTradingDecisionZeroAmountSkipsConfirmation(t *testing.T) {
	analysis := &domain.TradingAnalysis{
		Intention:       domain.IntentionBuy,
		Analysis:        "uncertain market",
		SuggestedAction: "wait for a signal",
		Amount:          decimal.Zero,
		Confidence:      0.6,
		RiskLevel:       domain.RiskMedium,
	}

	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentTradingDecision)},
		&fakeAnalyzer{analysis: analysis, provider: domain.ProviderOllama},
		&fakePricer{},
		&fakeWallet{},
		&fakeCollector{candles: sampleCandles(15)},
	)

	envelope := sel.Process(context.Background(), "should I buy?")

	assert.True(t, envelope.Success)
	assert.False(t, envelope.RequiresTradeConfirmation)
	assert.NotContains(t, envelope.Message, "Suggested Action: BUY")
}

func TestProcessAnalyzerFailureDegradesToFallback(t *testing.T) {
	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentMarketAnalysis)},
		&fakeAnalyzer{err: errors.New("model timed out"), provider: domain.ProviderOllama},
		&fakePricer{},
		&fakeWallet{},
		&fakeCollector{candles: sampleCandles(15)},
	)

	envelope := sel.Process(context.Background(), "analyze the market")

	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Analysis)
	assert.Equal(t, domain.IntentionNothing, envelope.Analysis.Intention)
	assert.Equal(t, domain.RiskHigh, envelope.Analysis.RiskLevel)
	assert.False(t, envelope.RequiresTradeConfirmation)
}

func TestProcessCollectorFailure(t *testing.T) {
	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentMarketAnalysis)},
		&fakeAnalyzer{provider: domain.ProviderOllama},
		&fakePricer{},
		&fakeWallet{},
		&fakeCollector{err: errors.New("klines unavailable")},
	)

	envelope := sel.Process(context.Background(), "analyze the market")

	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Message, "klines unavailable")
}

func TestProcessGeneralConsult(t *testing.T) {
	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentGeneralConsult)},
		&fakeAnalyzer{provider: domain.ProviderOllama},
		&fakePricer{},
		&fakeWallet{},
		&fakeCollector{},
	)

	envelope := sel.Process(context.Background(), "help")

	assert.True(t, envelope.Success)
	assert.Contains(t, envelope.Message, "Available Functions")
}

func TestProcessUSDTBalance(t *testing.T) {
	sel := newTestSelector(
		&fakeClassifier{result: classification(domain.IntentUSDTBalanceInfo)},
		&fakeAnalyzer{provider: domain.ProviderOllama},
		&fakePricer{},
		&fakeWallet{
			usdt: decimal.NewFromInt(1000),
			power: &domain.BuyingPower{
				USDTBalance:   decimal.NewFromInt(1000),
				BTCPrice:      decimal.NewFromInt(50000),
				UsableUSDT:    decimal.NewFromInt(999),
				MaxBTCBuyable: decimal.NewFromFloat(0.01998),
			},
		},
		&fakeCollector{},
	)

	envelope := sel.Process(context.Background(), "how much usdt?")

	assert.True(t, envelope.Success)
	assert.Contains(t, envelope.Message, "1000.00 USDT")
	assert.Contains(t, envelope.Message, "Max BTC Buyable")
}
