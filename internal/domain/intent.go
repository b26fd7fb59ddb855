package domain

import (
	"encoding/json"
	"fmt"
)

// Intent is a closed category of user request.
type Intent string

const (
	IntentBTCPriceInfo       Intent = "btc_price_info"
	IntentUSDTBalanceInfo    Intent = "usdt_balance_info"
	IntentPortfolioValue     Intent = "portfolio_value"
	IntentMarketAnalysis     Intent = "market_analysis"
	IntentRiskAssessment     Intent = "risk_assessment"
	IntentTradingDecision    Intent = "trading_decision"
	IntentVolatileMarket     Intent = "volatile_market"
	IntentPortfolioAnalysis  Intent = "portfolio_analysis"
	IntentGeneralConsult     Intent = "general_consult"
	IntentErrorRecovery      Intent = "error_recovery"
	IntentPriceAlerts        Intent = "price_alerts"
	IntentTradeHistory       Intent = "trade_history"
	IntentTechnicalAnalysis  Intent = "technical_analysis"
	IntentNewsSentiment      Intent = "news_sentiment"
	IntentStopLossManagement Intent = "stop_loss_management"
	IntentDCAStrategy        Intent = "dca_strategy"
	IntentMultiTimeframe     Intent = "multi_timeframe"
	IntentEducationalMode    Intent = "educational_mode"
)

var knownIntents = map[Intent]bool{
	IntentBTCPriceInfo:       true,
	IntentUSDTBalanceInfo:    true,
	IntentPortfolioValue:     true,
	IntentMarketAnalysis:     true,
	IntentRiskAssessment:     true,
	IntentTradingDecision:    true,
	IntentVolatileMarket:     true,
	IntentPortfolioAnalysis:  true,
	IntentGeneralConsult:     true,
	IntentErrorRecovery:      true,
	IntentPriceAlerts:        true,
	IntentTradeHistory:       true,
	IntentTechnicalAnalysis:  true,
	IntentNewsSentiment:      true,
	IntentStopLossManagement: true,
	IntentDCAStrategy:        true,
	IntentMultiTimeframe:     true,
	IntentEducationalMode:    true,
}

// IsValid reports whether the intent belongs to the closed taxonomy.
func (i Intent) IsValid() bool {
	return knownIntents[i]
}

// String returns the string representation.
func (i Intent) String() string {
	return string(i)
}

// QueryType is the broad type of the user's request.
type QueryType string

const (
	QueryInformation  QueryType = "information"
	QueryAnalysis     QueryType = "analysis"
	QueryTrading      QueryType = "trading"
	QueryConsultation QueryType = "consultation"
)

// IntentClassification is the typed result of classifying one user message.
// It is created once per message and consumed once by the selector.
type IntentClassification struct {
	Intent              Intent
	Confidence          float64
	Reasoning           string
	SuggestedHandler    string
	RequiredData        []string
	QueryType           QueryType
	PremiumRequested    bool
	RequestedProvider   Provider
	ComparisonRequested bool
}

// FallbackClassification builds the error_recovery classification returned
// whenever classification itself fails.
func FallbackClassification(reason string) *IntentClassification {
	return &IntentClassification{
		Intent:            IntentErrorRecovery,
		Confidence:        0,
		Reasoning:         reason,
		SuggestedHandler:  "error_recovery",
		RequiredData:      []string{"error_info", "available_data"},
		QueryType:         QueryConsultation,
		RequestedProvider: ProviderNone,
	}
}

type rawClassification struct {
	Intent              string   `json:"intent"`
	Confidence          *float64 `json:"confidence"`
	Reasoning           string   `json:"reasoning"`
	SuggestedHandler    string   `json:"suggested_handler"`
	RequiredData        []string `json:"required_data"`
	QueryType           string   `json:"user_query_type"`
	PremiumRequested    bool     `json:"premium_ai_requested"`
	RequestedProvider   string   `json:"requested_ai_provider"`
	ComparisonRequested bool     `json:"comparison_analysis"`
}

// ParseIntentClassification extracts an IntentClassification from a raw LLM
// reply. It never fails: malformed input yields FallbackClassification,
// unknown intents silently remap to error_recovery.
func ParseIntentClassification(response string) *IntentClassification {
	payload, ok := ExtractJSONObject(response)
	if !ok {
		return FallbackClassification("no valid JSON found in classification response")
	}

	var raw rawClassification
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return FallbackClassification(fmt.Sprintf("JSON parsing error: %v", err))
	}

	intent := Intent(raw.Intent)
	reasoning := raw.Reasoning
	if reasoning == "" {
		reasoning = "Intent classification completed"
	}
	if !intent.IsValid() {
		intent = IntentErrorRecovery
		reasoning = fmt.Sprintf("Unknown intent detected: %s", raw.Intent)
	}

	confidence := 0.5
	if raw.Confidence != nil {
		confidence = ClampConfidence(*raw.Confidence)
	}

	queryType := QueryType(raw.QueryType)
	switch queryType {
	case QueryInformation, QueryAnalysis, QueryTrading, QueryConsultation:
	default:
		queryType = QueryConsultation
	}

	provider := ParseProvider(raw.RequestedProvider)
	if !provider.IsPremium() {
		provider = ProviderNone
	}

	return &IntentClassification{
		Intent:              intent,
		Confidence:          confidence,
		Reasoning:           reasoning,
		SuggestedHandler:    raw.SuggestedHandler,
		RequiredData:        raw.RequiredData,
		QueryType:           queryType,
		PremiumRequested:    raw.PremiumRequested,
		RequestedProvider:   provider,
		ComparisonRequested: raw.ComparisonRequested,
	}
}
