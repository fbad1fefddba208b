package challenge

// Languages are the target languages offered by the CLI and web form.
// Generation itself accepts any language string.
var Languages = []string{
	"Python",
	"JavaScript",
	"TypeScript",
	"Go",
	"Java",
	"SQL",
	"C++",
}

var codeLanguages = map[string]string{
	"Python":     "python",
	"JavaScript": "javascript",
	"TypeScript": "typescript",
	"Go":         "go",
	"Java":       "java",
	"SQL":        "sql",
	"C++":        "cpp",
}

// CodeLanguage returns the syntax-highlight identifier for a language,
// or "text" when the language is not one of Languages.
func CodeLanguage(language string) string {
	if id, ok := codeLanguages[language]; ok {
		return id
	}
	return "text"
}
