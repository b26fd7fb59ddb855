package selector

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/market"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/promptbuilder"
)

// indicatorWindow is the candle count the technical handlers fetch; enough
// for EMA50 to stabilize.
const indicatorWindow = 60

func (s *Selector) handleBTCPriceInfo(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	price, err := s.pricer.GetPrice(ctx, s.pair)
	if err != nil {
		s.logger.Error("failed to fetch BTC price", zap.Error(err))
		return domain.ErrorEnvelope(fmt.Sprintf("❌ Error fetching BTC price: %v", err))
	}

	// recent history gives context; its absence is not fatal
	history, err := s.collector.DailyHistory(ctx, 3)
	if err != nil {
		s.logger.Warn("failed to fetch price history", zap.Error(err))
		history = nil
	}

	return &domain.ResponseEnvelope{
		ResponseType: "btc_price_info",
		Data: map[string]interface{}{
			"current_price": price,
			"price_history": market.FormatForLLM(history),
		},
		Message: fmt.Sprintf("₿ Current BTC Price: $%s", price.StringFixed(2)),
		Success: true,
	}
}

func (s *Selector) handleUSDTBalanceInfo(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	balance, err := s.wallet.USDTBalance(ctx)
	if err != nil {
		s.logger.Error("failed to fetch USDT balance", zap.Error(err))
		return domain.ErrorEnvelope(fmt.Sprintf("❌ Error fetching USDT balance: %v", err))
	}

	power, err := s.wallet.BuyingPower(ctx)
	if err != nil {
		s.logger.Error("failed to compute buying power", zap.Error(err))
		return domain.ErrorEnvelope(fmt.Sprintf("❌ Error fetching USDT balance: %v", err))
	}

	message := fmt.Sprintf(`💰 USDT Balance Information:
  💵 Total USDT: %s USDT
  📈 Current BTC Price: $%s
  🔢 Usable USDT (after fees): %s
  ₿ Max BTC Buyable: %s BTC`,
		balance.StringFixed(2),
		power.BTCPrice.StringFixed(2),
		power.UsableUSDT.StringFixed(2),
		power.MaxBTCBuyable.StringFixed(6))

	return &domain.ResponseEnvelope{
		ResponseType: "usdt_balance_info",
		Data:         power,
		Message:      message,
		Success:      true,
	}
}

func (s *Selector) handlePortfolioValue(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	portfolio, err := s.wallet.Portfolio(ctx)
	if err != nil {
		s.logger.Error("failed to compute portfolio value", zap.Error(err))
		return domain.ErrorEnvelope(fmt.Sprintf("❌ Error calculating portfolio value: %v", err))
	}

	message := fmt.Sprintf(`📊 Portfolio Summary:
  ₿ BTC Holdings: %s BTC
  📈 BTC Price: $%s
  💰 BTC Value: $%s USDT
  💵 USDT Balance: $%s USDT
  %s
  🏦 Total Portfolio: $%s USDT
  📊 BTC Allocation: %s%%
  📊 USDT Allocation: %s%%`,
		portfolio.BTCBalance.StringFixed(6),
		portfolio.BTCPrice.StringFixed(2),
		portfolio.BTCValueUSDT.StringFixed(2),
		portfolio.USDTBalance.StringFixed(2),
		strings.Repeat("=", 40),
		portfolio.TotalValueUSDT.StringFixed(2),
		portfolio.BTCAllocation.StringFixed(1),
		portfolio.USDTAllocation.StringFixed(1))

	return &domain.ResponseEnvelope{
		ResponseType: "portfolio_value",
		Data:         portfolio,
		Message:      message,
		Success:      true,
	}
}

func (s *Selector) handleMarketAnalysis(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	marketData, envelope := s.fetchMarketData(ctx, s.analysisDays, "market analysis")
	if envelope != nil {
		return envelope
	}

	analysis := s.analyze(ctx, intent, promptbuilder.MarketAnalysisPrompt(userMessage, marketData))

	message := fmt.Sprintf(`📊 Market Analysis:
📊 Analysis: %s
💡 Suggestion: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s`,
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	return s.analysisEnvelope("market_analysis", message, analysis)
}

func (s *Selector) handleRiskAssessment(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	marketData, envelope := s.fetchMarketData(ctx, s.analysisDays, "risk assessment")
	if envelope != nil {
		return envelope
	}

	analysis := s.analyze(ctx, intent, promptbuilder.MarketAnalysisPrompt(userMessage, marketData))

	message := fmt.Sprintf(`⚠️ Risk Assessment:
📊 Analysis: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s
💡 Recommendation: %s`,
		analysis.Analysis,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)),
		analysis.SuggestedAction)

	return s.analysisEnvelope("risk_assessment", message, analysis)
}

func (s *Selector) handleTradingDecision(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	marketData, envelope := s.fetchMarketData(ctx, s.analysisDays, "trading decision")
	if envelope != nil {
		return envelope
	}

	analysis := s.analyze(ctx, intent, promptbuilder.MarketAnalysisPrompt(userMessage, marketData))

	message := fmt.Sprintf(`🎯 Trading Decision:
📊 Analysis: %s
💡 Recommendation: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s`,
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	if analysis.RequiresTradeConfirmation() {
		message += fmt.Sprintf("\n🔄 Suggested Action: %s %s BTC",
			strings.ToUpper(string(analysis.Intention)), analysis.Amount.String())
	}

	return s.analysisEnvelope("trading_decision", message, analysis)
}

func (s *Selector) handleVolatileMarket(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	// a week of data is enough to assess current volatility
	marketData, envelope := s.fetchMarketData(ctx, 7, "volatile market analysis")
	if envelope != nil {
		return envelope
	}

	analysis := s.analyze(ctx, intent, promptbuilder.VolatileMarketPrompt(userMessage, marketData))

	message := fmt.Sprintf(`🌪️ Volatile Market Analysis:
📊 Analysis: %s
💡 Conservative Recommendation: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s
⚠️ Note: Extra caution recommended during volatile periods`,
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	return s.analysisEnvelope("volatile_market", message, analysis)
}

func (s *Selector) handlePortfolioAnalysis(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	portfolio, err := s.wallet.Portfolio(ctx)
	if err != nil {
		s.logger.Error("failed to compute portfolio", zap.Error(err))
		return domain.ErrorEnvelope(fmt.Sprintf("❌ Error analyzing portfolio: %v", err))
	}

	marketData, envelope := s.fetchMarketData(ctx, s.analysisDays, "portfolio analysis")
	if envelope != nil {
		return envelope
	}

	analysis := s.analyze(ctx, intent, promptbuilder.PortfolioAnalysisPrompt(userMessage, marketData, portfolio))

	message := fmt.Sprintf(`📊 Portfolio Analysis:
Current Allocation:
  🏦 Total Value: $%s USDT
  ₿ BTC: %s%% ($%s)
  💵 USDT: %s%% ($%s)

Market-Based Recommendation:
📊 Analysis: %s
💡 Suggestion: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s`,
		portfolio.TotalValueUSDT.StringFixed(2),
		portfolio.BTCAllocation.StringFixed(1),
		portfolio.BTCValueUSDT.StringFixed(2),
		portfolio.USDTAllocation.StringFixed(1),
		portfolio.USDTBalance.StringFixed(2),
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	envelope = s.analysisEnvelope("portfolio_analysis", message, analysis)
	envelope.Data = map[string]interface{}{
		"portfolio": portfolio,
		"analysis":  analysis,
	}
	return envelope
}

func (s *Selector) handleTechnicalAnalysis(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	candles, err := s.collector.DailyHistory(ctx, indicatorWindow)
	if err != nil {
		s.logger.Error("failed to fetch candles for technical analysis", zap.Error(err))
		return domain.ErrorEnvelope(fmt.Sprintf("❌ Error fetching market data for technical analysis: %v", err))
	}

	indicatorBlock := ""
	snapshot, err := market.ComputeIndicators(candles)
	if err != nil {
		s.logger.Warn("indicator computation failed, analyzing without indicators", zap.Error(err))
	} else {
		indicatorBlock = snapshot.FormatForLLM()
	}

	analysis := s.analyze(ctx, intent,
		promptbuilder.TechnicalAnalysisPrompt(userMessage, indicatorBlock, market.FormatForLLM(candles)))

	message := fmt.Sprintf(`📐 Technical Analysis:
%s
📊 Analysis: %s
💡 Suggestion: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s`,
		indicatorBlock,
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	return s.analysisEnvelope("technical_analysis", message, analysis)
}

func (s *Selector) handleNewsSentiment(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	marketData, envelope := s.fetchMarketData(ctx, s.analysisDays, "news sentiment analysis")
	if envelope != nil {
		return envelope
	}

	analysis := s.analyze(ctx, intent, promptbuilder.NewsSentimentPrompt(userMessage, marketData))

	message := fmt.Sprintf(`📰 News Sentiment Analysis:
📊 Analysis: %s
💡 Suggestion: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s`,
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	return s.analysisEnvelope("news_sentiment", message, analysis)
}

func (s *Selector) handleMultiTimeframe(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	daily, err := s.collector.DailyHistory(ctx, s.analysisDays)
	if err != nil {
		s.logger.Error("failed to fetch daily candles", zap.Error(err))
		return domain.ErrorEnvelope(fmt.Sprintf("❌ Error fetching market data for multi-timeframe analysis: %v", err))
	}

	intraday, err := s.collector.IntradayHistory(ctx, 7)
	if err != nil {
		s.logger.Error("failed to fetch intraday candles", zap.Error(err))
		return domain.ErrorEnvelope(fmt.Sprintf("❌ Error fetching market data for multi-timeframe analysis: %v", err))
	}

	analysis := s.analyze(ctx, intent,
		promptbuilder.MultiTimeframePrompt(userMessage, market.FormatForLLM(daily), market.FormatForLLM(intraday)))

	message := fmt.Sprintf(`🕐 Multi-Timeframe Analysis:
📊 Analysis: %s
💡 Suggestion: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s`,
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	return s.analysisEnvelope("multi_timeframe", message, analysis)
}

func (s *Selector) handleDCAStrategy(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	marketData, envelope := s.fetchMarketData(ctx, s.analysisDays, "DCA strategy analysis")
	if envelope != nil {
		return envelope
	}

	analysis := s.analyze(ctx, intent, promptbuilder.DCAStrategyPrompt(userMessage, marketData))

	message := fmt.Sprintf(`🔁 DCA Strategy:
📊 Analysis: %s
💡 Suggestion: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s`,
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	return s.analysisEnvelope("dca_strategy", message, analysis)
}

func (s *Selector) handleEducational(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	marketData, envelope := s.fetchMarketData(ctx, s.analysisDays, "educational analysis")
	if envelope != nil {
		return envelope
	}

	analysis := s.analyze(ctx, intent, promptbuilder.EducationalPrompt(userMessage, marketData))

	message := fmt.Sprintf(`🎓 Educational Analysis:
📊 %s
💡 Suggestion: %s
🎯 Confidence: %.0f%%
⚠️ Risk Level: %s`,
		analysis.Analysis,
		analysis.SuggestedAction,
		analysis.Confidence*100,
		strings.ToUpper(string(analysis.RiskLevel)))

	return s.analysisEnvelope("educational_mode", message, analysis)
}

func (s *Selector) handleGeneralConsult(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	message := `🤖 Crypto Trading Assistant Help:

Available Functions:
• 📈 Price Information - Get current BTC prices
• 💰 Balance Checking - Check USDT balance and buying power
• 📊 Portfolio Analysis - View total portfolio value
• 🎯 Market Analysis - Get AI-powered market insights
• ⚠️ Risk Assessment - Evaluate trading risks
• 🔄 Trading Decisions - Get trading recommendations
• 📐 Technical Analysis - Indicator-driven insights
• 📰 News Sentiment - News-aware market reads

💬 Natural Language: Just ask questions like:
"What's BTC price?", "Should I buy?", "How's my portfolio?"

🧠 Premium AI: mention OpenAI or Gemini to route analysis to that provider.

⚠️ Note: All trades are simulated and require your explicit confirmation!`

	return &domain.ResponseEnvelope{
		ResponseType: "general_consult",
		Data:         map[string]interface{}{},
		Message:      message,
		Success:      true,
	}
}

func (s *Selector) handleErrorRecoveryIntent(ctx context.Context, userMessage string, intent *domain.IntentClassification) *domain.ResponseEnvelope {
	return s.errorRecoveryEnvelope("")
}

// fetchMarketData fetches and formats daily history, or returns the error
// envelope the handler should surface.
func (s *Selector) fetchMarketData(ctx context.Context, days int, operation string) (string, *domain.ResponseEnvelope) {
	candles, err := s.collector.DailyHistory(ctx, days)
	if err != nil {
		s.logger.Error("failed to fetch price history",
			zap.String("operation", operation),
			zap.Error(err))
		return "", domain.ErrorEnvelope(fmt.Sprintf("❌ Error processing %s: %v", operation, err))
	}
	return market.FormatForLLM(candles), nil
}

// analysisEnvelope wraps an analysis into the uniform envelope shape shared
// by all model-backed handlers.
func (s *Selector) analysisEnvelope(responseType, message string, analysis *domain.TradingAnalysis) *domain.ResponseEnvelope {
	return &domain.ResponseEnvelope{
		ResponseType:              responseType,
		Data:                      analysis,
		Message:                   message,
		Success:                   true,
		RequiresTradeConfirmation: analysis.RequiresTradeConfirmation(),
		Analysis:                  analysis,
	}
}
