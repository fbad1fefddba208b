package challenge

import "fmt"

// Validator checks a generated challenge before it is returned.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if the challenge passes.
	Validate(c *Challenge, input GenerateInput) *ValidationError
}

// ValidationError describes why a challenge failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator rejects challenges that parse against the schema but
// are missing content. It does not judge whether the solution is correct.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *Challenge, _ GenerateInput) *ValidationError {
	switch {
	case c.Title == "":
		return v.fail("title is empty")
	case c.Description == "":
		return v.fail("description is empty")
	case c.Solution == "":
		return v.fail("solution is empty")
	case len(c.TestCases) == 0:
		return v.fail("no test cases")
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}
