package challenge

import "fmt"

// TestCase is one input/expected-output pair for a challenge.
type TestCase struct {
	// InputVal is a text representation of the test input.
	InputVal string `json:"input_val"`

	// OutputVal is a text representation of the expected output.
	OutputVal string `json:"output_val"`

	// IsHidden marks cases that should be concealed from the candidate.
	IsHidden bool `json:"is_hidden"`
}

// Challenge is a generated coding-interview challenge. It is built once per
// generation call and not modified afterwards.
type Challenge struct {
	Title string `json:"title"`

	// Description is the markdown problem statement.
	Description string `json:"description"`

	// TestCases are in presentation order.
	TestCases []TestCase `json:"test_cases"`

	// Solution is reference source code in the requested language. It is
	// never compiled or run.
	Solution string `json:"solution"`

	// Difficulty is a free-form label chosen by the model.
	Difficulty string `json:"difficulty"`
}

func (c *Challenge) String() string {
	return fmt.Sprintf("%s (%s)", c.Title, c.Difficulty)
}

// GenerateInput holds the caller's three free-form parameters. Values are
// passed to the model verbatim.
type GenerateInput struct {
	Topic     string
	Language  string
	Seniority string
}
