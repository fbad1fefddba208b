package challenge

import "context"

// Generator produces coding challenges using an LLM provider.
type Generator interface {
	// Generate produces a single challenge for the given input.
	// It either returns a complete, validated Challenge or an error; it
	// never retries and never returns a partial result.
	Generate(ctx context.Context, input GenerateInput) (*Challenge, error)
}
