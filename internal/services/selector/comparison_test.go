package selector

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/analyzer"
)

func buyAnalysis(confidence float64) *domain.TradingAnalysis {
	return &domain.TradingAnalysis{
		Intention:       domain.IntentionBuy,
		Analysis:        "uptrend",
		SuggestedAction: "accumulate",
		Amount:          decimal.NewFromFloat(0.005),
		Confidence:      confidence,
		RiskLevel:       domain.RiskLow,
	}
}

func sellAnalysis(confidence float64) *domain.TradingAnalysis {
	return &domain.TradingAnalysis{
		Intention:       domain.IntentionSell,
		Analysis:        "top formed",
		SuggestedAction: "take profit",
		Amount:          decimal.NewFromFloat(0.003),
		Confidence:      confidence,
		RiskLevel:       domain.RiskMedium,
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		standard *domain.TradingAnalysis
		premium  *domain.TradingAnalysis
		want     func(t *testing.T, got *domain.TradingAnalysis)
	}{
		{
			name:     "agreement close confidence picks more confident standard",
			standard: buyAnalysis(0.85),
			premium:  buyAnalysis(0.75),
			want: func(t *testing.T, got *domain.TradingAnalysis) {
				assert.Equal(t, domain.IntentionBuy, got.Intention)
				assert.InDelta(t, 0.85, got.Confidence, 1e-9)
			},
		},
		{
			name:     "agreement close confidence picks more confident premium",
			standard: buyAnalysis(0.6),
			premium:  buyAnalysis(0.7),
			want: func(t *testing.T, got *domain.TradingAnalysis) {
				assert.Equal(t, domain.IntentionBuy, got.Intention)
				assert.InDelta(t, 0.7, got.Confidence, 1e-9)
			},
		},
		{
			name:     "agreement with wide gap trusts premium even when less confident",
			standard: buyAnalysis(0.9),
			premium:  buyAnalysis(0.5),
			want: func(t *testing.T, got *domain.TradingAnalysis) {
				assert.Equal(t, domain.IntentionBuy, got.Intention)
				assert.InDelta(t, 0.5, got.Confidence, 1e-9)
			},
		},
		{
			name:     "disagreement yields conservative hold",
			standard: buyAnalysis(0.9),
			premium:  sellAnalysis(0.9),
			want: func(t *testing.T, got *domain.TradingAnalysis) {
				assert.Equal(t, domain.IntentionNothing, got.Intention)
				assert.InDelta(t, 0.3, got.Confidence, 1e-9)
				assert.Equal(t, domain.RiskHigh, got.RiskLevel)
				assert.True(t, got.Amount.IsZero())
				assert.Contains(t, got.Analysis, "Models disagree")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.standard, tt.premium)
			require.NotNil(t, got)
			tt.want(t, got)
		})
	}
}

func premiumClassification(provider domain.Provider, comparison bool) *domain.IntentClassification {
	return &domain.IntentClassification{
		Intent:              domain.IntentMarketAnalysis,
		Confidence:          0.9,
		PremiumRequested:    true,
		RequestedProvider:   provider,
		ComparisonRequested: comparison,
	}
}

func newComparisonSelector(standard, premium *fakeAnalyzer) *Selector {
	premiumMap := map[domain.Provider]analyzer.Analyzer{
		domain.ProviderOpenAI: premium,
	}
	return New(
		&fakeClassifier{},
		standard,
		premiumMap,
		&fakePricer{},
		&fakeWallet{},
		&fakeCollector{},
		domain.BTCUSDT,
		15,
		nil,
	)
}

func TestAnalyzeComparisonReconciles(t *testing.T) {
	standard := &fakeAnalyzer{analysis: buyAnalysis(0.6), provider: domain.ProviderOllama}
	premium := &fakeAnalyzer{analysis: buyAnalysis(0.7), provider: domain.ProviderOpenAI}
	sel := newComparisonSelector(standard, premium)

	got := sel.analyze(context.Background(), premiumClassification(domain.ProviderOpenAI, true), "analyze")

	require.NotNil(t, got)
	assert.Equal(t, domain.IntentionBuy, got.Intention)
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
}

func TestAnalyzeComparisonFailureFallsBackToStandard(t *testing.T) {
	standard := &fakeAnalyzer{analysis: buyAnalysis(0.8), provider: domain.ProviderOllama}
	premium := &fakeAnalyzer{err: errors.New("quota exhausted"), provider: domain.ProviderOpenAI}
	sel := newComparisonSelector(standard, premium)

	got := sel.analyze(context.Background(), premiumClassification(domain.ProviderOpenAI, true), "analyze")

	require.NotNil(t, got)
	assert.Equal(t, domain.IntentionBuy, got.Intention)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
}

func TestAnalyzePremiumWithoutComparison(t *testing.T) {
	standard := &fakeAnalyzer{analysis: buyAnalysis(0.6), provider: domain.ProviderOllama}
	premium := &fakeAnalyzer{analysis: sellAnalysis(0.9), provider: domain.ProviderOpenAI}
	sel := newComparisonSelector(standard, premium)

	got := sel.analyze(context.Background(), premiumClassification(domain.ProviderOpenAI, false), "analyze")

	require.NotNil(t, got)
	assert.Equal(t, domain.IntentionSell, got.Intention)
}

func TestAnalyzeUnconfiguredPremiumUsesStandard(t *testing.T) {
	standard := &fakeAnalyzer{analysis: buyAnalysis(0.6), provider: domain.ProviderOllama}
	premium := &fakeAnalyzer{analysis: sellAnalysis(0.9), provider: domain.ProviderOpenAI}
	sel := newComparisonSelector(standard, premium)

	// gemini is requested but only openai is configured
	got := sel.analyze(context.Background(), premiumClassification(domain.ProviderGemini, false), "analyze")

	require.NotNil(t, got)
	assert.Equal(t, domain.IntentionBuy, got.Intention)
}

func TestAnalyzeBothFailDuringComparison(t *testing.T) {
	standard := &fakeAnalyzer{err: errors.New("ollama down"), provider: domain.ProviderOllama}
	premium := &fakeAnalyzer{err: errors.New("quota exhausted"), provider: domain.ProviderOpenAI}
	sel := newComparisonSelector(standard, premium)

	got := sel.analyze(context.Background(), premiumClassification(domain.ProviderOpenAI, true), "analyze")

	// comparison fails, standard fallback also fails, result is the fixed
	// safe analysis
	require.NotNil(t, got)
	assert.Equal(t, domain.IntentionNothing, got.Intention)
	assert.Equal(t, domain.RiskHigh, got.RiskLevel)
	assert.Zero(t, got.Confidence)
}
