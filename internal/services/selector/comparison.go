package selector

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
	"github.com/AchileWeiglet/FinanceConsultant/internal/services/analyzer"
)

// confidenceAgreementGap is the confidence delta below which two analyzers
// recommending the same intention are treated as agreeing.
const confidenceAgreementGap = 0.2

// analyze runs the analysis prompt through whichever path the
// classification asked for. It never fails: transport errors collapse into
// a fallback analysis so the handler always has something to render.
func (s *Selector) analyze(ctx context.Context, intent *domain.IntentClassification, userPrompt string) *domain.TradingAnalysis {
	if intent.PremiumRequested && intent.RequestedProvider.IsPremium() {
		premium, ok := s.premium[intent.RequestedProvider]
		if !ok {
			s.logger.Warn("premium provider requested but not configured, using standard analyzer",
				zap.String("provider", string(intent.RequestedProvider)))
			return s.analyzeStandard(ctx, userPrompt)
		}

		if intent.ComparisonRequested {
			result, err := s.compareAnalyses(ctx, premium, userPrompt)
			if err != nil {
				s.logger.Warn("comparison analysis failed, falling back to standard analyzer",
					zap.String("provider", string(intent.RequestedProvider)),
					zap.Error(err))
				return s.analyzeStandard(ctx, userPrompt)
			}
			return result
		}

		analysis, err := premium.Analyze(ctx, userPrompt)
		if err != nil {
			s.logger.Warn("premium analysis failed, falling back to standard analyzer",
				zap.String("provider", string(intent.RequestedProvider)),
				zap.Error(err))
			return s.analyzeStandard(ctx, userPrompt)
		}
		return analysis
	}

	return s.analyzeStandard(ctx, userPrompt)
}

func (s *Selector) analyzeStandard(ctx context.Context, userPrompt string) *domain.TradingAnalysis {
	analysis, err := s.standard.Analyze(ctx, userPrompt)
	if err != nil {
		s.logger.Error("standard analysis failed", zap.Error(err))
		return domain.FallbackAnalysis(fmt.Sprintf("Analysis unavailable: %v", err))
	}
	return analysis
}

// compareAnalyses runs the standard and the premium analyzers concurrently
// and reconciles their results. Either side failing fails the comparison as
// a whole, so the caller can fall back to the single-provider path.
func (s *Selector) compareAnalyses(ctx context.Context, premium analyzer.Analyzer, userPrompt string) (*domain.TradingAnalysis, error) {
	type outcome struct {
		analysis *domain.TradingAnalysis
		err      error
	}

	standardCh := make(chan outcome, 1)
	premiumCh := make(chan outcome, 1)

	go func() {
		a, err := s.standard.Analyze(ctx, userPrompt)
		standardCh <- outcome{a, err}
	}()
	go func() {
		a, err := premium.Analyze(ctx, userPrompt)
		premiumCh <- outcome{a, err}
	}()

	std := <-standardCh
	prem := <-premiumCh

	if std.err != nil {
		return nil, errors.Wrap(std.err, "standard analyzer failed during comparison")
	}
	if prem.err != nil {
		return nil, errors.Wrap(prem.err, "premium analyzer failed during comparison")
	}

	reconciled := Reconcile(std.analysis, prem.analysis)
	s.logger.Info("reconciled comparison analysis",
		zap.String("standard_intention", string(std.analysis.Intention)),
		zap.Float64("standard_confidence", std.analysis.Confidence),
		zap.String("premium_intention", string(prem.analysis.Intention)),
		zap.Float64("premium_confidence", prem.analysis.Confidence),
		zap.String("result_intention", string(reconciled.Intention)))

	return reconciled, nil
}

// Reconcile merges a standard and a premium analysis of the same market.
// Agreement on intention defers to confidence; close confidence picks the
// more confident side, a wide gap trusts the premium model. Disagreement on
// intention always produces a conservative hold.
func Reconcile(standard, premium *domain.TradingAnalysis) *domain.TradingAnalysis {
	if standard.Intention != premium.Intention {
		return domain.ConservativeAnalysis(fmt.Sprintf(
			"Models disagree: standard suggests %s (%.0f%% confidence), premium suggests %s (%.0f%% confidence). Holding until signals align.",
			standard.Intention, standard.Confidence*100,
			premium.Intention, premium.Confidence*100))
	}

	if math.Abs(standard.Confidence-premium.Confidence) < confidenceAgreementGap {
		if standard.Confidence >= premium.Confidence {
			return standard
		}
		return premium
	}

	return premium
}
