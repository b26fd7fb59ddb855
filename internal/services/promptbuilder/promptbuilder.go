// Package promptbuilder generates the prompts sent to LLM backends: the
// intent classification prompt and the per-handler analysis prompts.
package promptbuilder

import (
	"fmt"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

// IntentPrompt returns the system and user prompts for classifying a message.
func IntentPrompt(userMessage string) (system, user string) {
	return classifierSystemPrompt, fmt.Sprintf("USER MESSAGE: %s\n\nClassify this message.", userMessage)
}

// MarketAnalysisPrompt embeds the user's query and formatted market data.
func MarketAnalysisPrompt(userQuery, marketData string) string {
	return fmt.Sprintf(`Analyze the following Bitcoin market data and user query:

USER QUERY: %s

MARKET DATA:
%s

Analyze the price trends over the given period, look for patterns and
support/resistance levels, consider volume changes and recent volatility.

Provide a comprehensive analysis following the JSON format specified in the system prompt.`, userQuery, marketData)
}

// VolatileMarketPrompt asks for an extra-conservative analysis.
func VolatileMarketPrompt(userQuery, marketData string) string {
	return fmt.Sprintf(`VOLATILE MARKET CONDITIONS DETECTED

The market is showing high volatility. Analyze with extra caution:

USER QUERY: %s

MARKET DATA:
%s

Provide an extremely conservative analysis: smaller position sizes, higher
risk ratings, lower confidence levels. Emphasize risk management.

Use the standard JSON response format.`, userQuery, marketData)
}

// PortfolioAnalysisPrompt combines the portfolio snapshot with market data.
func PortfolioAnalysisPrompt(userQuery, marketData string, portfolio *domain.PortfolioSnapshot) string {
	return fmt.Sprintf(`Analyze the current portfolio and suggest position adjustments:

CURRENT PORTFOLIO:
- BTC Holdings: %s BTC ($%s)
- USDT Balance: $%s
- Total Value: $%s
- BTC Allocation: %s%%
- USDT Allocation: %s%%

MARKET CONDITIONS:
%s

USER QUERY: %s

Consider the current allocation, market conditions for rebalancing, and
optimal position sizing. Provide recommendations in JSON format.`,
		portfolio.BTCBalance.StringFixed(6),
		portfolio.BTCValueUSDT.StringFixed(2),
		portfolio.USDTBalance.StringFixed(2),
		portfolio.TotalValueUSDT.StringFixed(2),
		portfolio.BTCAllocation.StringFixed(1),
		portfolio.USDTAllocation.StringFixed(1),
		marketData, userQuery)
}

// NewsSentimentPrompt asks for sentiment-aware analysis. No news feed is
// wired in, so the model reasons from price action and general knowledge.
func NewsSentimentPrompt(userQuery, marketData string) string {
	return fmt.Sprintf(`Integrate news sentiment considerations with technical analysis:

USER QUERY: %s

MARKET DATA:
%s

Combine likely news-driven sentiment with the technical picture to provide a
comprehensive trading recommendation in JSON format.`, userQuery, marketData)
}

// TechnicalAnalysisPrompt prepends an indicator snapshot to the market data.
func TechnicalAnalysisPrompt(userQuery, indicators, marketData string) string {
	return fmt.Sprintf(`Provide an indicator-driven technical analysis:

USER QUERY: %s

%s
MARKET DATA:
%s

Interpret the indicators (trend via EMAs, momentum via RSI and MACD) and
provide a trading recommendation in JSON format.`, userQuery, indicators, marketData)
}

// MultiTimeframePrompt combines daily and intraday views.
func MultiTimeframePrompt(userQuery, dailyData, intradayData string) string {
	return fmt.Sprintf(`Analyze Bitcoin across multiple timeframes:

USER QUERY: %s

DAILY TIMEFRAME:
%s

4H TIMEFRAME:
%s

Reconcile the higher-timeframe trend with the intraday picture and provide a
trading recommendation in JSON format.`, userQuery, dailyData, intradayData)
}

// DCAStrategyPrompt frames the analysis around recurring buys.
func DCAStrategyPrompt(userQuery, marketData string) string {
	return fmt.Sprintf(`Evaluate a dollar-cost-averaging approach for Bitcoin:

USER QUERY: %s

MARKET DATA:
%s

Assess whether current conditions favor starting or continuing a recurring
buy plan and what per-purchase size is sensible. Respond in JSON format.`, userQuery, marketData)
}

// EducationalPrompt asks the model to explain its reasoning for newcomers.
func EducationalPrompt(userQuery, marketData string) string {
	return fmt.Sprintf(`Analyze the market while teaching the user:

USER QUERY: %s

MARKET DATA:
%s

Explain every concept you use in plain language suitable for a newcomer, then
provide the recommendation in the standard JSON format with the explanation
inside the analysis field.`, userQuery, marketData)
}
