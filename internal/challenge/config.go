package challenge

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated challenge; the first
	// failure stops the pipeline. Schema conformance is already enforced
	// by the provider layer, so none are required.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults. Any
// schema-conforming response is returned as is, including empty strings
// and an empty test-case list.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// StrictConfig is DefaultConfig plus the StructuralValidator, for callers
// that would rather fail than show a challenge with missing content.
func StrictConfig() Config {
	cfg := DefaultConfig()
	cfg.Validators = []Validator{&StructuralValidator{}}
	return cfg
}
