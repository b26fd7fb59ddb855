package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Intention is the action recommended by a trading analysis.
type Intention string

const (
	IntentionBuy     Intention = "buy"
	IntentionSell    Intention = "sell"
	IntentionConsult Intention = "consult"
	IntentionNothing Intention = "nothing"
)

// RiskLevel is the risk assessment attached to an analysis.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Trade amount bounds enforced on every parsed analysis.
var (
	MinTradeAmount = decimal.NewFromFloat(0.001)
	MaxTradeAmount = decimal.NewFromFloat(0.01)
)

// TradingAnalysis is a validated analysis record produced from an LLM reply.
// After construction every enum field holds one of its allowed values and
// numeric fields are inside their bounds.
type TradingAnalysis struct {
	Intention       Intention
	Analysis        string
	SuggestedAction string
	Endpoint        string
	Amount          decimal.Decimal
	Confidence      float64
	RiskLevel       RiskLevel
}

// RequiresTradeConfirmation reports whether the caller should show a
// confirmation affordance. The amount, not the intention alone, gates this.
func (a *TradingAnalysis) RequiresTradeConfirmation() bool {
	return (a.Intention == IntentionBuy || a.Intention == IntentionSell) &&
		a.Amount.GreaterThan(decimal.Zero)
}

// FallbackAnalysis builds the conservative record used when an LLM reply
// cannot be parsed or an adapter call fails.
func FallbackAnalysis(reason string) *TradingAnalysis {
	return &TradingAnalysis{
		Intention:       IntentionNothing,
		Analysis:        reason,
		SuggestedAction: "Unable to analyze market data at this time. Please try again later.",
		Amount:          decimal.Zero,
		Confidence:      0,
		RiskLevel:       RiskHigh,
	}
}

// ConservativeAnalysis is the fixed safety override applied when two
// providers disagree on intention during a premium comparison.
func ConservativeAnalysis(summary string) *TradingAnalysis {
	return &TradingAnalysis{
		Intention:       IntentionNothing,
		Analysis:        summary,
		SuggestedAction: "Providers disagree. Holding is the safe choice until signals align.",
		Amount:          decimal.Zero,
		Confidence:      0.3,
		RiskLevel:       RiskHigh,
	}
}

type rawanalysis struct {
	Intention       string          `json:"intention"`
	Analysis        json.RawMessage `json:"analysis"`
	SuggestedAction string          `json:"suggested_action"`
	Endpoint        string          `json:"endpoint"`
	Amount          *float64        `json:"amount"`
	Confidence      *float64        `json:"confidence"`
	RiskLevel       string          `json:"risk_level"`
}

// ParseTradingAnalysis extracts a TradingAnalysis from a raw LLM reply.
// It never fails: malformed input yields FallbackAnalysis. Out-of-enum
// values are replaced by defaults, numeric fields are clamped.
func ParseTradingAnalysis(response string) *TradingAnalysis {
	payload, ok := ExtractJSONObject(response)
	if !ok {
		return FallbackAnalysis("Failed to parse analysis response")
	}

	var raw rawanalysis
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return FallbackAnalysis("Failed to parse analysis response")
	}

	intention := Intention(raw.Intention)
	switch intention {
	case IntentionBuy, IntentionSell, IntentionConsult, IntentionNothing:
	default:
		intention = IntentionNothing
	}

	risk := RiskLevel(raw.RiskLevel)
	switch risk {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		risk = RiskMedium
	}

	analysisText := flattenAnalysisField(raw.Analysis)
	if analysisText == "" {
		analysisText = "Analysis unavailable"
	}

	suggested := raw.SuggestedAction
	if suggested == "" {
		suggested = "No action recommended"
	}

	amount := MinTradeAmount
	if raw.Amount != nil {
		amount = clampDecimal(decimal.NewFromFloat(*raw.Amount), MinTradeAmount, MaxTradeAmount)
	}

	confidence := 0.5
	if raw.Confidence != nil {
		confidence = ClampConfidence(*raw.Confidence)
	}

	return &TradingAnalysis{
		Intention:       intention,
		Analysis:        analysisText,
		SuggestedAction: suggested,
		Endpoint:        raw.Endpoint,
		Amount:          amount,
		Confidence:      confidence,
		RiskLevel:       risk,
	}
}

// ExtractJSONObject strips markdown fences and returns the substring between
// the first '{' and the last '}'. Absence of either brace is a parse failure.
func ExtractJSONObject(response string) (string, bool) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return response[start : end+1], true
}

// ClampConfidence bounds a confidence score into [0, 1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampDecimal(v, min, max decimal.Decimal) decimal.Decimal {
	if v.LessThan(min) {
		return min
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}

// flattenAnalysisField coerces the analysis field to a string even when the
// model returns a nested object instead of plain text.
func flattenAnalysisField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err == nil {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(m))
		for _, k := range keys {
			switch v := m[k].(type) {
			case map[string]interface{}:
				subkeys := make([]string, 0, len(v))
				for sk := range v {
					subkeys = append(subkeys, sk)
				}
				sort.Strings(subkeys)
				for _, sk := range subkeys {
					parts = append(parts, fmt.Sprintf("%s: %v", sk, v[sk]))
				}
			default:
				parts = append(parts, fmt.Sprintf("%s: %v", k, v))
			}
		}
		return strings.Join(parts, "; ")
	}

	return strings.Trim(string(raw), "\"")
}
