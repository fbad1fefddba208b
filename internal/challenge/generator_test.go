package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/codeforge/challengegen/internal/llm"
)

func shortestPathJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Shortest Path Finder",
		"description": "...",
		"test_cases": [
			{"input_val": "[[1,2],[2,3]]", "output_val": "2", "is_hidden": false}
		],
		"solution": "func ...",
		"difficulty": "Medium"
	}`)
}

func graphInput() GenerateInput {
	return GenerateInput{Topic: "Graph traversal", Language: "Go", Seniority: "Senior"}
}

func TestGenerate_EndToEnd(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: shortestPathJSON()})
	gen := New(mock, DefaultConfig())

	c, err := gen.Generate(context.Background(), graphInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Title != "Shortest Path Finder" {
		t.Errorf("unexpected title: %q", c.Title)
	}
	if c.Description != "..." {
		t.Errorf("unexpected description: %q", c.Description)
	}
	if c.Solution != "func ..." {
		t.Errorf("unexpected solution: %q", c.Solution)
	}
	if c.Difficulty != "Medium" {
		t.Errorf("unexpected difficulty: %q", c.Difficulty)
	}
	if len(c.TestCases) != 1 {
		t.Fatalf("expected 1 test case, got %d", len(c.TestCases))
	}
	tc := c.TestCases[0]
	if tc.InputVal != "[[1,2],[2,3]]" || tc.OutputVal != "2" || tc.IsHidden {
		t.Errorf("unexpected test case: %+v", tc)
	}
	if c.String() != "Shortest Path Finder (Medium)" {
		t.Errorf("unexpected String(): %q", c.String())
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: shortestPathJSON()})
	cfg := DefaultConfig()
	gen := New(mock, cfg)

	if _, err := gen.Generate(context.Background(), graphInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected exactly 1 provider call, got %d", len(mock.Calls))
	}
	req := mock.Calls[0]

	if req.System != systemPrompt {
		t.Errorf("unexpected system prompt: %q", req.System)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected a single user message, got %+v", req.Messages)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Graph traversal", "Go", "Senior", "Trees and graphs", "Trade-offs and edge cases"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q: %q", want, msg)
		}
	}
	if req.Schema != ChallengeSchema {
		t.Error("expected ChallengeSchema on the request")
	}
	if req.MaxTokens != cfg.MaxTokens || req.Temperature != cfg.Temperature {
		t.Errorf("unexpected limits: max_tokens=%d temperature=%v", req.MaxTokens, req.Temperature)
	}
}

func TestGenerate_HiddenCasesPreserved(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"title": "Two Sum",
		"description": "Find two numbers that add up to a target.",
		"test_cases": [
			{"input_val": "[2,7,11,15], 9", "output_val": "[0,1]", "is_hidden": false},
			{"input_val": "[3,3], 6", "output_val": "[0,1]", "is_hidden": true}
		],
		"solution": "def two_sum(nums, target): ...",
		"difficulty": "Easy"
	}`)})
	gen := New(mock, DefaultConfig())

	c, err := gen.Generate(context.Background(), GenerateInput{Topic: "Arrays", Language: "Python", Seniority: "Junior"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.TestCases) != 2 {
		t.Fatalf("expected 2 test cases, got %d", len(c.TestCases))
	}
	if c.TestCases[0].IsHidden || !c.TestCases[1].IsHidden {
		t.Errorf("hidden flags not preserved in order: %+v", c.TestCases)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")},
	})
	gen := New(mock, DefaultConfig())

	c, err := gen.Generate(context.Background(), graphInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if c != nil {
		t.Errorf("expected nil challenge, got %+v", c)
	}
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Errorf("expected ErrProviderUnavailable in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("underlying message lost: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("expected no retry, got %d calls", len(mock.Calls))
	}
}

func TestGenerate_InvalidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Err: errors.New("missing property title")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), graphInput())
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("expected ErrInvalidResponse in chain, got %v", err)
	}
}

func TestGenerate_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title": 42}`)})
	gen := New(mock, DefaultConfig())

	c, err := gen.Generate(context.Background(), graphInput())
	if err == nil {
		t.Fatal("expected error for mistyped field")
	}
	if c != nil {
		t.Error("expected nil challenge")
	}
}

func TestGenerate_EmptyButConformingByDefault(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no test cases", `{"title":"T","description":"D","test_cases":[],"solution":"S","difficulty":"Easy"}`},
		{"empty solution", `{"title":"T","description":"D","test_cases":[{"input_val":"1","output_val":"1","is_hidden":false}],"solution":"","difficulty":"Easy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.payload)})
			gen := New(mock, DefaultConfig())

			c, err := gen.Generate(context.Background(), graphInput())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c == nil || c.Title != "T" || c.Difficulty != "Easy" {
				t.Errorf("expected challenge reproduced as given, got %+v", c)
			}
		})
	}
}

func TestGenerate_StrictStructuralFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"title": "Empty",
		"description": "No cases.",
		"test_cases": [],
		"solution": "pass",
		"difficulty": "Easy"
	}`)})
	gen := New(mock, StrictConfig())

	c, err := gen.Generate(context.Background(), graphInput())
	if c != nil {
		t.Error("expected nil challenge")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Validator != "structural" {
		t.Errorf("unexpected validator: %q", verr.Validator)
	}
}

func TestStrictConfig(t *testing.T) {
	def, strict := DefaultConfig(), StrictConfig()
	if len(def.Validators) != 0 {
		t.Errorf("default config should have no validators, got %d", len(def.Validators))
	}
	if len(strict.Validators) != 1 || strict.Validators[0].Name() != "structural" {
		t.Errorf("strict config should run the structural validator, got %+v", strict.Validators)
	}
	if strict.MaxTokens != def.MaxTokens || strict.Temperature != def.Temperature {
		t.Error("strict config should keep default limits")
	}
}

func TestGenerate_NoValidators(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"title": "",
		"description": "",
		"test_cases": [],
		"solution": "",
		"difficulty": ""
	}`)})
	gen := New(mock, Config{MaxTokens: 100})

	c, err := gen.Generate(context.Background(), graphInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Title != "" || len(c.TestCases) != 0 {
		t.Errorf("expected decoded empty challenge, got %+v", c)
	}
}

func TestGenerate_SetsPurpose(t *testing.T) {
	var seen llm.Purpose
	p := purposeProvider{fn: func(ctx context.Context) { seen = llm.PurposeFrom(ctx) }}
	gen := New(p, DefaultConfig())

	_, _ = gen.Generate(context.Background(), graphInput())
	if seen != "challenge-gen" {
		t.Errorf("expected purpose challenge-gen, got %q", seen)
	}
}

type purposeProvider struct {
	fn func(ctx context.Context)
}

func (p purposeProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.fn(ctx)
	return &llm.Response{Content: shortestPathJSON()}, nil
}

func (p purposeProvider) ModelID() string { return "purpose" }
