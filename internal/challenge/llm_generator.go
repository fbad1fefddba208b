package challenge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codeforge/challengegen/internal/llm"
	"github.com/codeforge/challengegen/internal/patterns"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate produces a single challenge for the given input. The topic,
// language and seniority go into the prompt as given; unknown seniorities
// simply get no pattern hint.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Challenge, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChallengeGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, patterns.ForLevel(input.Seniority))},
		},
		Schema:      ChallengeSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var c Challenge
	if err := json.Unmarshal(resp.Content, &c); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&c, input); verr != nil {
			return nil, verr
		}
	}

	return &c, nil
}
