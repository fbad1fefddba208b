package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/codeforge/challengegen/internal/challenge"
	"github.com/codeforge/challengegen/internal/patterns"
)

// Caller-facing messages.
const (
	msgMissingTopic    = "Please provide a topic to generate the challenge."
	msgGenerationError = "Error while generating the challenge: "
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"levels": patterns.Levels()})
}

// handlePatterns takes the level as a query parameter since
// "Staff/Principal" contains a slash.
func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	p := patterns.ForLevel(level)
	if p == nil {
		p = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"level":    level,
		"patterns": p,
	})
}

type languageInfo struct {
	Name         string `json:"name"`
	CodeLanguage string `json:"code_language"`
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	out := make([]languageInfo, 0, len(challenge.Languages))
	for _, l := range challenge.Languages {
		out = append(out, languageInfo{Name: l, CodeLanguage: challenge.CodeLanguage(l)})
	}
	respondJSON(w, http.StatusOK, map[string]any{"languages": out})
}

type generateRequest struct {
	Topic     string `json:"topic"`
	Language  string `json:"language"`
	Seniority string `json:"seniority"`
}

type generateResponse struct {
	*challenge.Challenge
	Topic        string `json:"topic"`
	Language     string `json:"language"`
	CodeLanguage string `json:"code_language"`
	Seniority    string `json:"seniority"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := s.generate(r, req)
	if err != nil {
		var inputErr *inputError
		if errors.As(err, &inputErr) {
			respondError(w, http.StatusBadRequest, "invalid_request", inputErr.msg)
			return
		}
		respondError(w, http.StatusBadGateway, "generation_failed", msgGenerationError+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, generateResponse{
		Challenge:    c,
		Topic:        req.Topic,
		Language:     req.Language,
		CodeLanguage: challenge.CodeLanguage(req.Language),
		Seniority:    req.Seniority,
	})
}

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }

// generate checks caller-side preconditions and runs one generation.
// Language and seniority are not restricted to the known lists.
func (s *Server) generate(r *http.Request, req generateRequest) (*challenge.Challenge, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, &inputError{msg: msgMissingTopic}
	}

	c, err := s.generator.Generate(r.Context(), challenge.GenerateInput{
		Topic:     req.Topic,
		Language:  req.Language,
		Seniority: req.Seniority,
	})
	if err != nil {
		slog.Warn("challenge generation failed",
			"error", err,
			"topic", req.Topic,
			"language", req.Language,
			"seniority", req.Seniority,
		)
		return nil, err
	}

	slog.Info("challenge generated",
		"title", c.Title,
		"difficulty", c.Difficulty,
		"test_cases", len(c.TestCases),
	)
	return c, nil
}
