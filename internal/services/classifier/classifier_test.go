package classifier

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

type fakeLLMClient struct {
	response string
	err      error
	called   bool
}

func (f *fakeLLMClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.called = true
	return f.response, f.err
}

func (f *fakeLLMClient) Ping(ctx context.Context) error { return nil }

func (f *fakeLLMClient) Provider() domain.Provider { return domain.ProviderOllama }

func TestClassifyKeywordOverride(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		wantProvider   domain.Provider
		wantPremium    bool
		wantComparison bool
	}{
		{
			name:         "plain news question",
			message:      "What does the latest news mean for bitcoin?",
			wantProvider: domain.ProviderNone,
		},
		{
			name:         "sentiment keyword",
			message:      "How is market SENTIMENT right now?",
			wantProvider: domain.ProviderNone,
		},
		{
			name:         "multi-word keyword",
			message:      "what is social media saying about BTC",
			wantProvider: domain.ProviderNone,
		},
		{
			name:         "news with premium provider",
			message:      "use openai to analyze the news",
			wantProvider: domain.ProviderOpenAI,
			wantPremium:  true,
		},
		{
			name:           "news with comparison request",
			message:        "compare gemini's take on the headlines",
			wantProvider:   domain.ProviderGemini,
			wantPremium:    true,
			wantComparison: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeLLMClient{response: `{"intent":"market_analysis","confidence":0.9}`}
			c := New(client, nil)

			got := c.Classify(context.Background(), tt.message)
			require.NotNil(t, got)

			assert.Equal(t, domain.IntentNewsSentiment, got.Intent)
			assert.InDelta(t, 0.95, got.Confidence, 1e-9)
			assert.Equal(t, tt.wantProvider, got.RequestedProvider)
			assert.Equal(t, tt.wantPremium, got.PremiumRequested)
			assert.Equal(t, tt.wantComparison, got.ComparisonRequested)
			assert.False(t, client.called, "keyword path must not hit the LLM")
		})
	}
}

func TestClassifyViaLLM(t *testing.T) {
	client := &fakeLLMClient{response: `{"intent":"btc_price_info","confidence":0.92,"reasoning":"asks for price","user_query_type":"information"}`}
	c := New(client, nil)

	got := c.Classify(context.Background(), "what's the current BTC price?")

	assert.True(t, client.called)
	assert.Equal(t, domain.IntentBTCPriceInfo, got.Intent)
	assert.InDelta(t, 0.92, got.Confidence, 1e-9)
}

func TestClassifyLLMFailureFallsBack(t *testing.T) {
	client := &fakeLLMClient{err: errors.New("connection refused")}
	c := New(client, nil)

	got := c.Classify(context.Background(), "should I buy?")

	assert.Equal(t, domain.IntentErrorRecovery, got.Intent)
	assert.Zero(t, got.Confidence)
	assert.Contains(t, got.Reasoning, "connection refused")
}

func TestClassifyUnparseableLLMReply(t *testing.T) {
	client := &fakeLLMClient{response: "sorry, I cannot classify that"}
	c := New(client, nil)

	got := c.Classify(context.Background(), "do a thing")

	assert.Equal(t, domain.IntentErrorRecovery, got.Intent)
}

func TestDetectPremiumMarkers(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantPremium    bool
		wantProvider   domain.Provider
		wantComparison bool
	}{
		{"no markers", "what is the price", false, domain.ProviderNone, false},
		{"gpt marker", "ask gpt about this", true, domain.ProviderOpenAI, false},
		{"gemini marker", "ask gemini please", true, domain.ProviderGemini, false},
		{"comparison only", "compare the signals", false, domain.ProviderNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			premium, provider, comparison := detectPremiumMarkers(tt.text)

			assert.Equal(t, tt.wantPremium, premium)
			assert.Equal(t, tt.wantProvider, provider)
			assert.Equal(t, tt.wantComparison, comparison)
		})
	}
}
