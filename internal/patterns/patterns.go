// Package patterns holds the static catalog of coding patterns suggested for
// each seniority level. The catalog is read-only after package init.
package patterns

// Seniority level labels, in display order.
const (
	LevelJunior    = "Junior"
	LevelMid       = "Mid-Level"
	LevelSenior    = "Senior"
	LevelPrincipal = "Staff/Principal"
)

// Levels returns all seniority levels in display order.
func Levels() []string {
	return []string{
		LevelJunior,
		LevelMid,
		LevelSenior,
		LevelPrincipal,
	}
}

// byLevel maps a seniority level to its patterns in editorial order.
var byLevel = map[string][]string{
	LevelJunior: {
		"Loops (for, while)",
		"Arrays and lists manipulation",
		"Conditionals and control flow",
		"String manipulation",
		"Basic functions and parameters",
		"Simple input/output handling",
		"Basic data structures (dict, set)",
	},
	LevelMid: {
		"Recursion",
		"Sorting and searching algorithms",
		"Object-oriented programming",
		"Error handling and validation",
		"Working with collections (map, filter, reduce)",
		"Simple design patterns (e.g. factory, strategy)",
		"Time and space complexity awareness",
	},
	LevelSenior: {
		"Trees and graphs",
		"Dynamic programming",
		"Concurrency and async",
		"Design patterns (observer, decorator, etc.)",
		"Performance optimization",
		"API design and contracts",
		"Trade-offs and edge cases",
	},
	LevelPrincipal: {
		"Scalability and distributed systems",
		"Architecture and boundaries",
		"Trade-offs under constraints",
		"Refactoring and clean code at scale",
		"Cross-cutting concerns",
		"API design and evolution",
		"Testing strategy and quality",
	},
}

// ForLevel returns the patterns for a seniority level. Unknown levels,
// including the empty string, yield an empty slice. The returned slice is
// a copy and may be modified by the caller.
func ForLevel(seniority string) []string {
	p, ok := byLevel[seniority]
	if !ok {
		return nil
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// IsLevel reports whether s is one of the known seniority levels.
func IsLevel(s string) bool {
	_, ok := byLevel[s]
	return ok
}
