// Package analyzer turns LLM completions into validated trading analyses.
package analyzer

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/config"
	"github.com/AchileWeiglet/FinanceConsultant/internal/clients"
	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/promptbuilder"
)

// Analyzer produces a trading analysis from a prepared prompt. Implemented
// by one adapter per backend, selected by the factory below.
type Analyzer interface {
	Analyze(ctx context.Context, userPrompt string) (*domain.TradingAnalysis, error)
	Provider() domain.Provider
}

// LLMAnalyzer runs the shared analysis prompt against one LLM backend and
// parses the reply. Parsing never fails; only the transport can.
type LLMAnalyzer struct {
	client clients.LLMClient
	logger *zap.Logger
}

// NewLLMAnalyzer wraps an LLM client into an Analyzer.
func NewLLMAnalyzer(client clients.LLMClient, logger *zap.Logger) *LLMAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMAnalyzer{client: client, logger: logger}
}

// Analyze sends the prompt and parses the backend's reply. A transport
// failure is returned as an error; a malformed reply degrades to the
// conservative fallback record.
func (a *LLMAnalyzer) Analyze(ctx context.Context, userPrompt string) (*domain.TradingAnalysis, error) {
	response, err := a.client.Complete(ctx, promptbuilder.SystemPrompt, userPrompt)
	if err != nil {
		return nil, errors.Wrapf(err, "%s analysis call failed", a.client.Provider())
	}

	analysis := domain.ParseTradingAnalysis(response)
	a.logger.Debug("analysis parsed",
		zap.String("provider", a.client.Provider().String()),
		zap.String("intention", string(analysis.Intention)),
		zap.Float64("confidence", analysis.Confidence))

	return analysis, nil
}

// Provider identifies the wrapped backend.
func (a *LLMAnalyzer) Provider() domain.Provider {
	return a.client.Provider()
}

// New builds the analyzer for a provider, keyed on the closed provider enum.
func New(provider domain.Provider, cfg config.Config, logger *zap.Logger) (Analyzer, error) {
	client, err := clients.NewLLMClient(provider, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s analyzer", provider)
	}
	return NewLLMAnalyzer(client, logger), nil
}
