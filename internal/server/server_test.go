package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeforge/challengegen/internal/challenge"
	"github.com/codeforge/challengegen/internal/llm"
)

const challengeJSON = `{
	"title": "Shortest Path Finder",
	"description": "Find the shortest path between two nodes.",
	"test_cases": [
		{"input_val": "[[1,2],[2,3]]", "output_val": "2", "is_hidden": false},
		{"input_val": "[[1,3]]", "output_val": "1", "is_hidden": true}
	],
	"solution": "func shortest() int { return 0 }",
	"difficulty": "Medium"
}`

func newTestServer(responses ...llm.MockResponse) (*Server, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return New(challenge.New(mock, challenge.DefaultConfig())), mock
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func do(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer()
	rec, env := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestLevels(t *testing.T) {
	s, _ := newTestServer()
	rec, env := do(t, s, http.MethodGet, "/api/v1/levels", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct{ Levels []string }
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"Junior", "Mid-Level", "Senior", "Staff/Principal"}, data.Levels)
}

func TestPatterns(t *testing.T) {
	s, _ := newTestServer()

	rec, env := do(t, s, http.MethodGet, "/api/v1/patterns?level="+url.QueryEscape("Staff/Principal"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Level    string
		Patterns []string
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Staff/Principal", data.Level)
	assert.Len(t, data.Patterns, 7)
	assert.Equal(t, "Scalability and distributed systems", data.Patterns[0])

	rec, env = do(t, s, http.MethodGet, "/api/v1/patterns?level=Intern", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotNil(t, data.Patterns)
	assert.Empty(t, data.Patterns)
}

func TestLanguages(t *testing.T) {
	s, _ := newTestServer()
	rec, env := do(t, s, http.MethodGet, "/api/v1/languages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct{ Languages []languageInfo }
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Languages, len(challenge.Languages))
	assert.Contains(t, data.Languages, languageInfo{Name: "C++", CodeLanguage: "cpp"})
}

func TestGenerate_Success(t *testing.T) {
	s, mock := newTestServer(llm.MockResponse{Content: json.RawMessage(challengeJSON)})

	rec, env := do(t, s, http.MethodPost, "/api/v1/challenges",
		`{"topic":"Graph traversal","language":"Go","seniority":"Senior"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	var data struct {
		challenge.Challenge
		Topic        string `json:"topic"`
		Language     string `json:"language"`
		CodeLanguage string `json:"code_language"`
		Seniority    string `json:"seniority"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Shortest Path Finder", data.Title)
	assert.Equal(t, "Medium", data.Difficulty)
	require.Len(t, data.TestCases, 2)
	assert.True(t, data.TestCases[1].IsHidden)
	assert.Equal(t, "Graph traversal", data.Topic)
	assert.Equal(t, "Go", data.Language)
	assert.Equal(t, "go", data.CodeLanguage)
	assert.Equal(t, "Senior", data.Seniority)

	require.Len(t, mock.Calls, 1)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "about Graph traversal to solve in Go.")
}

func TestGenerate_BlankTopic(t *testing.T) {
	s, mock := newTestServer(llm.MockResponse{Content: json.RawMessage(challengeJSON)})

	rec, env := do(t, s, http.MethodPost, "/api/v1/challenges",
		`{"topic":"   ","language":"Go","seniority":"Senior"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Please provide a topic to generate the challenge.", env.Error.Message)
	assert.Empty(t, mock.Calls, "generator must not be invoked for a blank topic")
}

func TestGenerate_BadJSON(t *testing.T) {
	s, _ := newTestServer()
	rec, env := do(t, s, http.MethodPost, "/api/v1/challenges", `{"topic":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", env.Error.Code)
}

func TestGenerate_ProviderFailure(t *testing.T) {
	s, _ := newTestServer(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("upstream down")},
	})

	rec, env := do(t, s, http.MethodPost, "/api/v1/challenges",
		`{"topic":"Queues","language":"Python","seniority":"Junior"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "generation_failed", env.Error.Code)
	assert.True(t, strings.HasPrefix(env.Error.Message, "Error while generating the challenge: "))
	assert.Contains(t, env.Error.Message, "upstream down")
}

func TestGenerate_RecoversAfterFailure(t *testing.T) {
	s, _ := newTestServer(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("flaky")}},
		llm.MockResponse{Content: json.RawMessage(challengeJSON)},
	)
	body := `{"topic":"Graphs","language":"Go","seniority":"Senior"}`

	rec, _ := do(t, s, http.MethodPost, "/api/v1/challenges", body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec, env := do(t, s, http.MethodPost, "/api/v1/challenges", body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestPage_Form(t *testing.T) {
	s, _ := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/?seniority="+url.QueryEscape("Senior"), nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Code Challenge Generator")
	assert.Contains(t, body, `<option value="Senior" selected>`)
	assert.Contains(t, body, "Trees and graphs")
}

func TestPage_Generate(t *testing.T) {
	s, _ := newTestServer(llm.MockResponse{Content: json.RawMessage(challengeJSON)})

	form := url.Values{"topic": {"Graph traversal"}, "language": {"Go"}, "seniority": {"Senior"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h2>Shortest Path Finder</h2>")
	assert.Contains(t, body, "Difficulty: Medium")
	assert.Contains(t, body, "Test case 1")
	assert.Contains(t, body, "Test case 2")
	assert.Contains(t, body, "(hidden)")
	assert.Contains(t, body, `class="language-go"`)
}

func TestPage_EmptyTopic(t *testing.T) {
	s, mock := newTestServer()

	form := url.Values{"topic": {""}, "language": {"Go"}, "seniority": {"Senior"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please provide a topic to generate the challenge.")
	assert.Empty(t, mock.Calls)
}

func TestPage_DescriptionRenderedAsMarkdown(t *testing.T) {
	c := `{"title":"Two Sum","description":"Return the **indices** of two numbers.\n\n- ` + "`nums`" + ` has at least two items\n\n<script>alert(1)</script>","test_cases":[],"solution":"","difficulty":"Easy"}`
	s, _ := newTestServer(llm.MockResponse{Content: json.RawMessage(c)})

	form := url.Values{"topic": {"Arrays"}, "language": {"Go"}, "seniority": {"Junior"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>indices</strong>")
	assert.Contains(t, body, "<li><code>nums</code> has at least two items</li>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "<p>plain text</p>\n", string(renderMarkdown("plain text")))
	assert.Contains(t, string(renderMarkdown("[x](javascript:alert(1))")), `<a href="">x</a>`)
}
