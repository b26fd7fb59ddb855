package domain

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderNone   Provider = "none"
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// premium providers a user may request explicitly for analysis.
var premiumProviders = map[Provider]bool{
	ProviderOpenAI: true,
	ProviderGemini: true,
}

// ParseProvider maps a string to a known provider, falling back to none.
func ParseProvider(s string) Provider {
	switch Provider(s) {
	case ProviderOllama:
		return ProviderOllama
	case ProviderOpenAI:
		return ProviderOpenAI
	case ProviderGemini:
		return ProviderGemini
	default:
		return ProviderNone
	}
}

// ParseProviderOrDefault maps a string to a known provider, falling back to
// ollama, the bundled default backend.
func ParseProviderOrDefault(s string) Provider {
	if p := ParseProvider(s); p != ProviderNone {
		return p
	}
	return ProviderOllama
}

// IsPremium reports whether the provider can be requested as a premium
// alternative to the default analysis backend.
func (p Provider) IsPremium() bool {
	return premiumProviders[p]
}

// String returns the string representation.
func (p Provider) String() string {
	return string(p)
}
