// Package clients provides adapters to LLM completion backends. Each
// adapter sends one prompt and returns raw text; all structure is imposed
// by the caller's parser.
package clients

import (
	"context"
	"time"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

const (
	defaultTimeout = 60 * time.Second

	// deterministic-ish sampling keeps JSON replies stable
	completionTemperature = 0.3
	completionMaxTokens   = 1000
)

// LLMClient is a text-completion backend. Implementations are stateless per
// call and never retry: a failed call surfaces as an error the caller
// degrades from.
type LLMClient interface {
	// Complete sends a prompt and returns the backend's raw text reply.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Provider identifies the backend.
	Provider() domain.Provider
}
