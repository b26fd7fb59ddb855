package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.BotMode)
	assert.Equal(t, "binance", cfg.Platform)
	assert.Equal(t, domain.BTCUSDT, cfg.Pair)
	assert.Equal(t, domain.ProviderOllama, cfg.IntentProvider)
	assert.Equal(t, domain.ProviderOllama, cfg.AnalysisProvider)
	assert.Equal(t, 15, cfg.PriceAnalysisDays)
	assert.True(t, cfg.DefaultTradeAmount.Equal(domain.MinTradeAmount))
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRICE_PLATFORM", "bybit")
	t.Setenv("ANALYSIS_AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PRICE_ANALYSIS_DAYS", "30")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "bybit", cfg.Platform)
	assert.Equal(t, domain.ProviderOpenAI, cfg.AnalysisProvider)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, 30, cfg.PriceAnalysisDays)
}

func TestLoadYamlOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `bot_mode: console
platform: bybit
pair: BTC_USDT
analysis_provider: ollama
ollama_model: mistral:7b
price_analysis_days: "20"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bybit", cfg.Platform)
	assert.Equal(t, "mistral:7b", cfg.OllamaModel)
	assert.Equal(t, 20, cfg.PriceAnalysisDays)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown bot mode",
			env:     map[string]string{"BOT_MODE": "carrier-pigeon"},
			wantErr: "unsupported bot mode",
		},
		{
			name:    "unknown platform",
			env:     map[string]string{"PRICE_PLATFORM": "mtgox"},
			wantErr: "unsupported price platform",
		},
		{
			name:    "openai provider without key",
			env:     map[string]string{"ANALYSIS_AI_PROVIDER": "openai", "OPENAI_API_KEY": ""},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "gemini provider without key",
			env:     map[string]string{"ANALYSIS_AI_PROVIDER": "gemini", "GEMINI_API_KEY": ""},
			wantErr: "GEMINI_API_KEY",
		},
		{
			name:    "telegram mode without credentials",
			env:     map[string]string{"BOT_MODE": "telegram", "TELEGRAM_BOT_TOKEN": "", "TELEGRAM_CHAT_ID": ""},
			wantErr: "TELEGRAM_BOT_TOKEN",
		},
		{
			name:    "bad analysis days",
			env:     map[string]string{"PRICE_ANALYSIS_DAYS": "soon"},
			wantErr: "PRICE_ANALYSIS_DAYS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
