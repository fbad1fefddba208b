package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/codeforge/challengegen/internal/challenge"
	"github.com/codeforge/challengegen/internal/patterns"
)

//go:embed web/*.html
var webFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"inc":      func(i int) int { return i + 1 },
	"markdown": renderMarkdown,
}).ParseFS(webFS, "web/index.html"))

// markdown leaves goldmark's safe defaults on: raw HTML in model output is
// dropped and javascript: links are not rendered.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown turns a challenge description into HTML. If conversion
// fails the description is shown escaped and preformatted.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown conversion failed", "error", err)
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(buf.String())
}

// pageData is everything the form page renders.
type pageData struct {
	Levels    []string
	Languages []string
	Patterns  []string

	Topic     string
	Language  string
	Seniority string

	Challenge    *challenge.Challenge
	CodeLanguage string
	Error        string
}

func newPageData(r *http.Request) pageData {
	d := pageData{
		Levels:    patterns.Levels(),
		Languages: challenge.Languages,
		Topic:     r.FormValue("topic"),
		Language:  r.FormValue("language"),
		Seniority: r.FormValue("seniority"),
	}
	if d.Language == "" {
		d.Language = challenge.Languages[0]
	}
	if d.Seniority == "" {
		d.Seniority = patterns.LevelJunior
	}
	d.Patterns = patterns.ForLevel(d.Seniority)
	return d
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, newPageData(r))
}

// handlePageGenerate handles the form submission. Failures are shown on the
// page and leave the form values in place for another attempt.
func (s *Server) handlePageGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	d := newPageData(r)

	c, err := s.generate(r, generateRequest{
		Topic:     d.Topic,
		Language:  d.Language,
		Seniority: d.Seniority,
	})
	switch {
	case err == nil:
		d.Challenge = c
		d.CodeLanguage = challenge.CodeLanguage(d.Language)
		s.render(w, http.StatusOK, d)
	case isInputError(err):
		d.Error = err.Error()
		s.render(w, http.StatusBadRequest, d)
	default:
		d.Error = msgGenerationError + err.Error()
		s.render(w, http.StatusBadGateway, d)
	}
}

func isInputError(err error) bool {
	var inputErr *inputError
	return errors.As(err, &inputErr)
}

func (s *Server) render(w http.ResponseWriter, status int, d pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, d); err != nil {
		slog.Error("failed to render page", "error", err)
	}
}
