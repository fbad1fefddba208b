package challenge

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a tech lead specialized in generating code challenges for software engineers."

// buildUserMessage interpolates the caller's parameters and the optional
// pattern hint into the human instruction.
func buildUserMessage(input GenerateInput, patterns []string) string {
	return fmt.Sprintf(
		"Generate a code challenge for a %s level software engineer about %s to solve in %s.%s",
		input.Seniority, input.Topic, input.Language, hintClause(patterns),
	)
}

// hintClause lists the level's patterns for the model. It is empty when
// there are no patterns, so the instruction ends at the period.
func hintClause(patterns []string) string {
	if len(patterns) == 0 {
		return ""
	}
	return " When relevant to the topic, prefer aligning the challenge with these patterns for this level: " +
		strings.Join(patterns, "; ") + "."
}
