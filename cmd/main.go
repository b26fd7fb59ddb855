// Command assistant runs the conversational Bitcoin trading assistant.
// It supports a console REPL and a Telegram front end, Binance or Bybit as
// the price source, and Ollama, OpenAI or Gemini as model backends.
//
// Usage:
//
//	assistant --config config.yaml
//	assistant (uses environment variables only)
//
// Required environment variables depend on the configured providers:
//
//	For OpenAI: OPENAI_API_KEY
//	For Gemini: GEMINI_API_KEY
//	For Telegram mode: TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"
	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/config"
	"github.com/AchileWeiglet/FinanceConsultant/internal/bot/console"
	"github.com/AchileWeiglet/FinanceConsultant/internal/bot/telegram"
	"github.com/AchileWeiglet/FinanceConsultant/internal/clients"
	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/analyzer"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/classifier"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/market"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/pricer"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/selector"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/trader"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/wallet"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		priceSource pricer.Pricer
		klines      market.KlineProvider
	)
	switch cfg.Platform {
	case "binance":
		client := binance.NewClient("", "")
		priceSource = pricer.NewBinancePricer(client)
		klines = market.NewBinanceKlineProvider(client)
	case "bybit":
		client := bybit.NewClient()
		priceSource = pricer.NewBybitPricer(client)
		klines = market.NewBybitKlineProvider(client)
	default:
		logger.Fatal("unsupported platform", zap.String("platform", cfg.Platform))
	}

	intentClient, err := clients.NewLLMClient(cfg.IntentProvider, cfg)
	if err != nil {
		logger.Fatal("failed to create intent client", zap.Error(err))
	}
	pingClient(ctx, intentClient, logger)

	standard, err := analyzer.New(cfg.AnalysisProvider, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create analyzer", zap.Error(err))
	}

	premium := buildPremiumAnalyzers(cfg, logger)

	collector := market.NewCollector(klines, cfg.Pair)
	walletSvc := wallet.NewService(priceSource, cfg.Pair)
	simTrader := trader.NewSimulateTrader(cfg.Pair, logger)

	sel := selector.New(
		classifier.New(intentClient, logger),
		standard,
		premium,
		priceSource,
		walletSvc,
		collector,
		cfg.Pair,
		cfg.PriceAnalysisDays,
		logger,
	)

	switch cfg.BotMode {
	case "telegram":
		bot, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID, sel, simTrader, logger)
		if err != nil {
			logger.Fatal("failed to create telegram bot", zap.Error(err))
		}
		err = bot.Run(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Fatal("telegram bot stopped", zap.Error(err))
		}
	case "console":
		bot := console.New(sel, simTrader, logger)
		err = bot.Run(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Fatal("console bot stopped", zap.Error(err))
		}
	default:
		logger.Fatal("unsupported bot mode", zap.String("mode", cfg.BotMode))
	}

	logger.Info("assistant stopped")
}

// buildPremiumAnalyzers creates an analyzer per premium provider with
// credentials configured. A provider without a key is simply absent.
func buildPremiumAnalyzers(cfg config.Config, logger *zap.Logger) map[domain.Provider]analyzer.Analyzer {
	premium := make(map[domain.Provider]analyzer.Analyzer)

	if cfg.OpenAIAPIKey != "" {
		a, err := analyzer.New(domain.ProviderOpenAI, cfg, logger)
		if err != nil {
			logger.Warn("openai analyzer unavailable", zap.Error(err))
		} else {
			premium[domain.ProviderOpenAI] = a
		}
	}
	if cfg.GeminiAPIKey != "" {
		a, err := analyzer.New(domain.ProviderGemini, cfg, logger)
		if err != nil {
			logger.Warn("gemini analyzer unavailable", zap.Error(err))
		} else {
			premium[domain.ProviderGemini] = a
		}
	}

	return premium
}

// pingClient checks reachability of an LLM backend at startup. Failure is
// logged, not fatal: the router degrades to fallbacks per request.
func pingClient(ctx context.Context, client clients.LLMClient, logger *zap.Logger) {
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx); err != nil {
		logger.Warn("llm backend unreachable at startup",
			zap.String("provider", string(client.Provider())),
			zap.Error(err))
		return
	}
	logger.Info("llm backend reachable", zap.String("provider", string(client.Provider())))
}
