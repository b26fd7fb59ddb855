package domain

// IntentInfo is the classification metadata attached to every envelope.
type IntentInfo struct {
	Intent     Intent
	Confidence float64
	Reasoning  string
	Handler    string
}

// ResponseEnvelope is the uniform result of dispatching one user message.
// It is constructed once per request and not mutated after dispatch returns.
type ResponseEnvelope struct {
	ResponseType              string
	Data                      interface{}
	Message                   string
	Success                   bool
	RequiresTradeConfirmation bool
	Analysis                  *TradingAnalysis
	IntentInfo                *IntentInfo
}

// ErrorEnvelope builds the envelope for a failed handler.
func ErrorEnvelope(message string) *ResponseEnvelope {
	return &ResponseEnvelope{
		ResponseType: "error",
		Message:      message,
		Success:      false,
	}
}
