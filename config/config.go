// Package config loads assistant configuration from the environment with an
// optional YAML override file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3.2-vision:11b"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultGeminiModel   = "gemini-pro"
)

// Config holds every setting the assistant needs. It is built once at
// startup and passed down through constructors.
type Config struct {
	// BotMode selects the presentation adapter: "console" or "telegram".
	BotMode string
	// Platform selects the price data source: "binance" or "bybit".
	Platform string
	Pair     domain.Pair

	// IntentProvider classifies user messages. Ollama by default.
	IntentProvider domain.Provider
	// AnalysisProvider produces trading analyses. May differ from the
	// intent provider.
	AnalysisProvider domain.Provider

	OllamaBaseURL string
	OllamaModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string

	TelegramBotToken string
	TelegramChatID   string

	DefaultTradeAmount decimal.Decimal
	PriceAnalysisDays  int
	LLMTimeout         time.Duration
}

type yamlConfig struct {
	BotMode            string `yaml:"bot_mode,omitempty"`
	Platform           string `yaml:"platform,omitempty"`
	Pair               string `yaml:"pair,omitempty"`
	IntentProvider     string `yaml:"intent_provider,omitempty"`
	AnalysisProvider   string `yaml:"analysis_provider,omitempty"`
	OllamaBaseURL      string `yaml:"ollama_base_url,omitempty"`
	OllamaModel        string `yaml:"ollama_model,omitempty"`
	OpenAIModel        string `yaml:"openai_model,omitempty"`
	GeminiModel        string `yaml:"gemini_model,omitempty"`
	DefaultTradeAmount string `yaml:"default_trade_amount,omitempty"`
	PriceAnalysisDays  string `yaml:"price_analysis_days,omitempty"`
}

// Load builds the configuration from environment variables (a .env file is
// honored when present) and, when path is non-empty, a YAML override file.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BotMode:            envOr("BOT_MODE", "console"),
		Platform:           envOr("PRICE_PLATFORM", "binance"),
		Pair:               domain.BTCUSDT,
		IntentProvider:     domain.ParseProviderOrDefault(envOr("AI_PROVIDER", "ollama")),
		AnalysisProvider:   domain.ParseProviderOrDefault(envOr("ANALYSIS_AI_PROVIDER", "ollama")),
		OllamaBaseURL:      envOr("OLLAMA_BASE_URL", defaultOllamaBaseURL),
		OllamaModel:        envOr("OLLAMA_MODEL", defaultOllamaModel),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        envOr("OPENAI_MODEL", defaultOpenAIModel),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        envOr("GEMINI_MODEL", defaultGeminiModel),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:     os.Getenv("TELEGRAM_CHAT_ID"),
		DefaultTradeAmount: domain.MinTradeAmount,
		PriceAnalysisDays:  15,
		LLMTimeout:         60 * time.Second,
	}

	if v := os.Getenv("DEFAULT_TRADE_AMOUNT"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect DEFAULT_TRADE_AMOUNT %q: %w", v, err)
		}
		cfg.DefaultTradeAmount = amount
	}
	if v := os.Getenv("PRICE_ANALYSIS_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect PRICE_ANALYSIS_DAYS %q: %w", v, err)
		}
		cfg.PriceAnalysisDays = days
	}

	if path != "" {
		if err := cfg.applyYaml(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyYaml(path string) error {
	f, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var y yamlConfig
	if err := yaml.Unmarshal(f, &y); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if y.BotMode != "" {
		c.BotMode = y.BotMode
	}
	if y.Platform != "" {
		c.Platform = y.Platform
	}
	if y.Pair != "" {
		pair, err := domain.PairFromString(y.Pair)
		if err != nil {
			return fmt.Errorf("incorrect 'pair' param in yaml config: %s, error: %w", y.Pair, err)
		}
		c.Pair = pair
	}
	if y.IntentProvider != "" {
		c.IntentProvider = domain.ParseProviderOrDefault(y.IntentProvider)
	}
	if y.AnalysisProvider != "" {
		c.AnalysisProvider = domain.ParseProviderOrDefault(y.AnalysisProvider)
	}
	if y.OllamaBaseURL != "" {
		c.OllamaBaseURL = y.OllamaBaseURL
	}
	if y.OllamaModel != "" {
		c.OllamaModel = y.OllamaModel
	}
	if y.OpenAIModel != "" {
		c.OpenAIModel = y.OpenAIModel
	}
	if y.GeminiModel != "" {
		c.GeminiModel = y.GeminiModel
	}
	if y.DefaultTradeAmount != "" {
		amount, err := decimal.NewFromString(y.DefaultTradeAmount)
		if err != nil {
			return fmt.Errorf("incorrect 'default_trade_amount' param in yaml config, error: %w", err)
		}
		c.DefaultTradeAmount = amount
	}
	if y.PriceAnalysisDays != "" {
		days, err := strconv.Atoi(y.PriceAnalysisDays)
		if err != nil {
			return fmt.Errorf("incorrect 'price_analysis_days' param in yaml config (must be an integer), error: %w", err)
		}
		c.PriceAnalysisDays = days
	}

	return nil
}

func (c *Config) validate() error {
	switch c.BotMode {
	case "console", "telegram":
	default:
		return fmt.Errorf("unsupported bot mode: %s", c.BotMode)
	}

	switch c.Platform {
	case "binance", "bybit":
	default:
		return fmt.Errorf("unsupported price platform: %s", c.Platform)
	}

	if c.AnalysisProvider == domain.ProviderOpenAI && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set when OpenAI is the analysis provider")
	}
	if c.AnalysisProvider == domain.ProviderGemini && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set when Gemini is the analysis provider")
	}
	if c.BotMode == "telegram" && (c.TelegramBotToken == "" || c.TelegramChatID == "") {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set for telegram mode")
	}
	if c.PriceAnalysisDays <= 0 {
		return fmt.Errorf("price_analysis_days must be positive, got %d", c.PriceAnalysisDays)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
