package llm

import (
	"context"
	"fmt"

	"github.com/codeforge/challengegen/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with tracing, timeout and logging
// middleware. eventRepo may be nil, in which case calls are only logged
// through slog.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRecorder) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → tracing → timeout → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo)
	bounded := WithTimeout(logged, cfg.Timeout)

	return WithTracing(bounded, cfg.Provider), nil
}

// NewProviderFromEnv resolves configuration from the environment and builds
// the provider.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRecorder) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}
