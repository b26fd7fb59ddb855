// Package classifier maps free-text user messages to typed intents.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/internal/clients"
	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/promptbuilder"
)

// newsKeywords short-circuit classification to news_sentiment. The general
// classifier under-detects this category, so the keyword match always wins.
var newsKeywords = []string{
	"news",
	"sentiment",
	"headline",
	"social media",
}

// Classifier classifies user messages with a keyword fast path and an LLM
// fallback. It never returns an error: every failure mode degrades to the
// error_recovery classification.
type Classifier struct {
	client clients.LLMClient
	logger *zap.Logger
}

// New creates a classifier over the intent backend.
func New(client clients.LLMClient, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{client: client, logger: logger}
}

// Classify determines the intent of a user message. The keyword override
// runs before the LLM call and always wins when it matches.
func (c *Classifier) Classify(ctx context.Context, userMessage string) *domain.IntentClassification {
	if classification := c.keywordOverride(userMessage); classification != nil {
		c.logger.Info("keyword override fired",
			zap.String("intent", classification.Intent.String()))
		return classification
	}

	system, user := promptbuilder.IntentPrompt(userMessage)
	response, err := c.client.Complete(ctx, system, user)
	if err != nil {
		c.logger.Error("intent classification call failed", zap.Error(err))
		return domain.FallbackClassification(fmt.Sprintf("Error occurred during classification: %v", err))
	}

	classification := domain.ParseIntentClassification(response)
	c.logger.Info("intent classified",
		zap.String("intent", classification.Intent.String()),
		zap.Float64("confidence", classification.Confidence))

	return classification
}

// keywordOverride returns a synthetic high-confidence news_sentiment
// classification when any news keyword is present, nil otherwise. Premium
// markers are still scanned so premium news analysis keeps working.
func (c *Classifier) keywordOverride(userMessage string) *domain.IntentClassification {
	lowered := strings.ToLower(userMessage)

	matched := ""
	for _, kw := range newsKeywords {
		if strings.Contains(lowered, kw) {
			matched = kw
			break
		}
	}
	if matched == "" {
		return nil
	}

	premium, provider, comparison := detectPremiumMarkers(lowered)

	return &domain.IntentClassification{
		Intent:              domain.IntentNewsSentiment,
		Confidence:          0.95,
		Reasoning:           fmt.Sprintf("Keyword match: %q", matched),
		SuggestedHandler:    "news_sentiment",
		RequiredData:        []string{"price_history", "news_context"},
		QueryType:           domain.QueryAnalysis,
		PremiumRequested:    premium,
		RequestedProvider:   provider,
		ComparisonRequested: comparison,
	}
}

// detectPremiumMarkers scans lowered text for explicit provider requests.
func detectPremiumMarkers(lowered string) (premium bool, provider domain.Provider, comparison bool) {
	provider = domain.ProviderNone

	switch {
	case strings.Contains(lowered, "openai") || strings.Contains(lowered, "gpt"):
		premium = true
		provider = domain.ProviderOpenAI
	case strings.Contains(lowered, "gemini"):
		premium = true
		provider = domain.ProviderGemini
	}

	if strings.Contains(lowered, "compare") || strings.Contains(lowered, "comparison") {
		comparison = true
	}

	return premium, provider, comparison
}
