package clients

import (
	"fmt"

	"github.com/AchileWeiglet/FinanceConsultant/config"
	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

// NewLLMClient builds the adapter for a provider. This is the single point
// of truth for dispatching to backend-specific implementations.
func NewLLMClient(provider domain.Provider, cfg config.Config) (LLMClient, error) {
	switch provider {
	case domain.ProviderOllama:
		return NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	case domain.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case domain.ProviderGemini:
		return NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
