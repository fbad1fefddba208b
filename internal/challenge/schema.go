package challenge

import "github.com/codeforge/challengegen/internal/llm"

// ChallengeSchema defines the JSON schema for challenge generation responses.
// Every property is required so providers with strict structured output
// accept it.
var ChallengeSchema = &llm.Schema{
	Name:        "code-challenge",
	Description: "A coding interview challenge with test cases and a reference solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The title of the challenge",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "The description of the challenge, in markdown",
			},
			"test_cases": map[string]any{
				"type":        "array",
				"description": "The test cases for the challenge",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"input_val": map[string]any{
							"type":        "string",
							"description": "The input value for the test case",
						},
						"output_val": map[string]any{
							"type":        "string",
							"description": "The output value for the test case",
						},
						"is_hidden": map[string]any{
							"type":        "boolean",
							"description": "Whether the test case is hidden",
						},
					},
					"required":             []any{"input_val", "output_val", "is_hidden"},
					"additionalProperties": false,
				},
			},
			"solution": map[string]any{
				"type":        "string",
				"description": "The solution to the challenge, as source code in the requested language",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"description": "The difficulty of the challenge",
			},
		},
		"required":             []any{"title", "description", "test_cases", "solution", "difficulty"},
		"additionalProperties": false,
	},
}
