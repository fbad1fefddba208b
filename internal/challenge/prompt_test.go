package challenge

import (
	"strings"
	"testing"

	"github.com/codeforge/challengegen/internal/patterns"
)

func TestBuildUserMessage_WithHint(t *testing.T) {
	input := GenerateInput{Topic: "Graph traversal", Language: "Go", Seniority: "Senior"}
	msg := buildUserMessage(input, patterns.ForLevel(input.Seniority))

	want := "Generate a code challenge for a Senior level software engineer about Graph traversal to solve in Go." +
		" When relevant to the topic, prefer aligning the challenge with these patterns for this level: " +
		"Trees and graphs; Dynamic programming; Concurrency and async; Design patterns (observer, decorator, etc.); " +
		"Performance optimization; API design and contracts; Trade-offs and edge cases."
	if msg != want {
		t.Errorf("unexpected message:\n got: %q\nwant: %q", msg, want)
	}
}

func TestBuildUserMessage_NoPatterns(t *testing.T) {
	input := GenerateInput{Topic: "Hashing", Language: "Rust", Seniority: "Wizard"}
	msg := buildUserMessage(input, patterns.ForLevel(input.Seniority))

	want := "Generate a code challenge for a Wizard level software engineer about Hashing to solve in Rust."
	if msg != want {
		t.Errorf("got %q, want %q", msg, want)
	}
}

func TestBuildUserMessage_VerbatimValues(t *testing.T) {
	input := GenerateInput{Topic: "  spaced  topic ", Language: "cobol", Seniority: "junior"}
	msg := buildUserMessage(input, nil)

	if !strings.Contains(msg, "about   spaced  topic  to solve in cobol.") {
		t.Errorf("values were altered: %q", msg)
	}
	if !strings.Contains(msg, "for a junior level") {
		t.Errorf("seniority was altered: %q", msg)
	}
}

func TestHintClause(t *testing.T) {
	if got := hintClause(nil); got != "" {
		t.Errorf("expected empty clause, got %q", got)
	}
	if got := hintClause([]string{}); got != "" {
		t.Errorf("expected empty clause for empty slice, got %q", got)
	}

	got := hintClause([]string{"a", "b"})
	want := " When relevant to the topic, prefer aligning the challenge with these patterns for this level: a; b."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHintClause_EveryLevel(t *testing.T) {
	for _, level := range patterns.Levels() {
		p := patterns.ForLevel(level)
		clause := hintClause(p)
		if strings.Count(clause, "; ") != len(p)-1 {
			t.Errorf("%s: expected %d separators in %q", level, len(p)-1, clause)
		}
		if !strings.HasSuffix(clause, p[len(p)-1]+".") {
			t.Errorf("%s: clause should end with last pattern and a period: %q", level, clause)
		}
	}
}
