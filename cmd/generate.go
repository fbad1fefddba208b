package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/codeforge/challengegen/internal/challenge"
	"github.com/codeforge/challengegen/internal/llm"
	"github.com/codeforge/challengegen/internal/patterns"
	"github.com/codeforge/challengegen/internal/ui/theme"
	"github.com/spf13/cobra"
)

// Messages shown to the user as is.
const (
	msgMissingTopic    = "Please provide a topic to generate the challenge."
	msgGenerationError = "Error while generating the challenge: "
)

var errMissingTopic = errors.New("missing topic")

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a coding challenge",
	Example: `  challengegen generate --topic "Graph traversal" --language Go --seniority Senior
  challengegen generate --topic "String manipulation" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := challenge.GenerateInput{}
		input.Topic, _ = cmd.Flags().GetString("topic")
		input.Language, _ = cmd.Flags().GetString("language")
		input.Seniority, _ = cmd.Flags().GetString("seniority")
		asJSON, _ := cmd.Flags().GetBool("json")

		if strings.TrimSpace(input.Topic) == "" {
			return reportError(cmd, msgMissingTopic, errMissingTopic)
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		gen := challenge.New(provider, generatorConfig(cmd))
		c, err := gen.Generate(cmd.Context(), input)
		if err != nil {
			return reportError(cmd, msgGenerationError+err.Error(), fmt.Errorf("generate challenge: %w", err))
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeChallengeJSON(out, c)
		}
		fmt.Fprintln(out, renderChallenge(c, input))
		return nil
	},
}

func writeChallengeJSON(w io.Writer, c *challenge.Challenge) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// renderChallenge formats a challenge for the terminal.
func renderChallenge(c *challenge.Challenge, input challenge.GenerateInput) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(theme.Meta.Render(fmt.Sprintf("Topic: %s · Seniority: %s · Language: %s",
		input.Topic, input.Seniority, input.Language)))
	b.WriteString("  ")
	b.WriteString(theme.Badge.Render(c.Difficulty))
	b.WriteString("\n")

	b.WriteString(theme.Heading.Render("Description"))
	b.WriteString("\n")
	b.WriteString(c.Description)
	b.WriteString("\n")

	b.WriteString(theme.Heading.Render("Test cases"))
	b.WriteString("\n")
	for i, tc := range c.TestCases {
		label := fmt.Sprintf("Test case %d", i+1)
		if tc.IsHidden {
			label += " " + theme.Hint.Render("(hidden)")
		}
		body := fmt.Sprintf("%s\nInput:    %s\nExpected: %s", label, tc.InputVal, tc.OutputVal)
		b.WriteString(theme.Card.Render(body))
		b.WriteString("\n")
	}

	b.WriteString(theme.Heading.Render("Reference solution (" + challenge.CodeLanguage(input.Language) + ")"))
	b.WriteString("\n")
	b.WriteString(theme.Code.Render(c.Solution))

	return b.String()
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Challenge topic (required)")
	generateCmd.Flags().StringP("language", "l", challenge.Languages[0], "Language to solve the challenge in")
	generateCmd.Flags().StringP("seniority", "s", patterns.LevelJunior, "Seniority level of the target engineer")
	generateCmd.Flags().Bool("json", false, "Print the challenge as JSON")
	generateCmd.Flags().Bool("strict", false, "Reject challenges with an empty title, description, solution or test-case list")
}
