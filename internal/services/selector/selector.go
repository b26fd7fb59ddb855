// Package selector routes classified user messages to response handlers.
// Dispatch is total: every intent resolves to some handler, and no failure
// escapes Process as anything but an envelope.
package selector

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/analyzer"
)

type intentClassifier interface {
	Classify(ctx context.Context, userMessage string) *domain.IntentClassification
}

type priceService interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

type walletService interface {
	USDTBalance(ctx context.Context) (decimal.Decimal, error)
	Portfolio(ctx context.Context) (*domain.PortfolioSnapshot, error)
	BuyingPower(ctx context.Context) (*domain.BuyingPower, error)
}

type candleCollector interface {
	DailyHistory(ctx context.Context, days int) ([]domain.MarketCandle, error)
	IntradayHistory(ctx context.Context, days int) ([]domain.MarketCandle, error)
}

// handlerFunc produces the envelope for one classified message. Handlers
// convert their own failures into error envelopes.
type handlerFunc func(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope

type namedHandler struct {
	name string
	fn   handlerFunc
}

// Selector is the router: it classifies a message, dispatches it to the
// mapped handler and assembles the uniform response envelope.
type Selector struct {
	classifier   intentClassifier
	standard     analyzer.Analyzer
	premium      map[domain.Provider]analyzer.Analyzer
	pricer       priceService
	wallet       walletService
	collector    candleCollector
	pair         domain.Pair
	analysisDays int
	logger       *zap.Logger

	handlers map[domain.Intent]namedHandler
}

// New creates the selector. premium maps each configured premium provider
// to its analyzer; providers without credentials are simply absent.
func New(
	classifier intentClassifier,
	standard analyzer.Analyzer,
	premium map[domain.Provider]analyzer.Analyzer,
	pricer priceService,
	wallet walletService,
	collector candleCollector,
	pair domain.Pair,
	analysisDays int,
	logger *zap.Logger,
) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if premium == nil {
		premium = map[domain.Provider]analyzer.Analyzer{}
	}

	s := &Selector{
		classifier:   classifier,
		standard:     standard,
		premium:      premium,
		pricer:       pricer,
		wallet:       wallet,
		collector:    collector,
		pair:         pair,
		analysisDays: analysisDays,
		logger:       logger,
	}

	s.handlers = map[domain.Intent]namedHandler{
		domain.IntentBTCPriceInfo:      {"btc_price_info", s.handleBTCPriceInfo},
		domain.IntentUSDTBalanceInfo:   {"usdt_balance_info", s.handleUSDTBalanceInfo},
		domain.IntentPortfolioValue:    {"portfolio_value", s.handlePortfolioValue},
		domain.IntentMarketAnalysis:    {"market_analysis", s.handleMarketAnalysis},
		domain.IntentRiskAssessment:    {"risk_assessment", s.handleRiskAssessment},
		domain.IntentTradingDecision:   {"trading_decision", s.handleTradingDecision},
		domain.IntentVolatileMarket:    {"volatile_market", s.handleVolatileMarket},
		domain.IntentPortfolioAnalysis: {"portfolio_analysis", s.handlePortfolioAnalysis},
		domain.IntentTechnicalAnalysis: {"technical_analysis", s.handleTechnicalAnalysis},
		domain.IntentNewsSentiment:     {"news_sentiment", s.handleNewsSentiment},
		domain.IntentMultiTimeframe:    {"multi_timeframe", s.handleMultiTimeframe},
		domain.IntentDCAStrategy:       {"dca_strategy", s.handleDCAStrategy},
		domain.IntentEducationalMode:   {"educational_mode", s.handleEducational},
		domain.IntentGeneralConsult:    {"general_consult", s.handleGeneralConsult},
		domain.IntentErrorRecovery:     {"error_recovery", s.handleErrorRecoveryIntent},
	}

	return s
}

// Process handles one user message end to end. It never returns nil and
// never panics through: catastrophic failures become error_recovery
// envelopes with the failure text embedded.
func (s *Selector) Process(ctx context.Context, userMessage string) (envelope *domain.ResponseEnvelope) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in selector", zap.Any("panic", r))
			envelope = s.errorRecoveryEnvelope(fmt.Sprintf("%v", r))
			envelope.IntentInfo = &domain.IntentInfo{
				Intent:     domain.IntentErrorRecovery,
				Confidence: 0,
				Reasoning:  "recovered from internal failure",
				Handler:    "error_recovery",
			}
		}
	}()

	intent := s.classifier.Classify(ctx, userMessage)

	handler, ok := s.handlers[intent.Intent]
	if !ok {
		// total dispatch: classifier-known intents without a handler still
		// resolve to error_recovery
		handler = namedHandler{"error_recovery", s.handleErrorRecoveryIntent}
	}

	s.logger.Info("dispatching",
		zap.String("intent", intent.Intent.String()),
		zap.String("handler", handler.name),
		zap.Float64("confidence", intent.Confidence))

	envelope = handler.fn(ctx, userMessage, intent)
	envelope.IntentInfo = &domain.IntentInfo{
		Intent:     intent.Intent,
		Confidence: intent.Confidence,
		Reasoning:  intent.Reasoning,
		Handler:    handler.name,
	}

	return envelope
}

// errorRecoveryEnvelope builds the guidance envelope, embedding errText
// when a concrete failure is known.
func (s *Selector) errorRecoveryEnvelope(errText string) *domain.ResponseEnvelope {
	var message string
	if errText != "" {
		message = fmt.Sprintf(`❌ Error Processing Request:
%s

Please try:
• Being more specific with your request
• Using simpler language
• Asking direct questions like "What's BTC price?" or "How much USDT do I have?"`, errText)
	} else {
		message = `❓ I didn't quite understand your request.

Please try:
• Being more specific with your question
• Asking direct questions like:
  - "What's the current BTC price?"
  - "How much USDT do I have?"
  - "Should I buy Bitcoin now?"
  - "What's my portfolio worth?"`
	}

	return &domain.ResponseEnvelope{
		ResponseType: "error_recovery",
		Message:      message,
		Success:      false,
	}
}
