package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/metrics"
	"github.com/evcraddock/golden-profile/internal/persona"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// logFor returns the request-scoped logger, falling back to the server's.
func (s *Server) logFor(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleAPIComments routes /api/comments requests.
func (s *Server) handleAPIComments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.apiListComments(w)
	case http.MethodPost:
		s.apiAddComment(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// apiListComments returns the cached feed, newest first.
func (s *Server) apiListComments(w http.ResponseWriter) {
	comments, _ := s.feed.Snapshot()
	apiJSON(w, comments, http.StatusOK)
}

// apiAddComment validates and stores a comment.
func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request) {
	var req comment.Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	in, err := comment.Validate(req)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := s.comments.Insert(r.Context(), in)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		s.logFor(r).Error().Err(err).Msg("api insert failed")
		apiError(w, fmt.Sprintf("adding comment: %v", err), http.StatusInternalServerError)
		return
	}
	metrics.SubmissionsTotal.WithLabelValues("posted").Inc()
	s.feed.Nudge()

	apiJSON(w, c, http.StatusCreated)
}

// handleAPIOpenAI proxies a message to the persona model.
func (s *Server) handleAPIOpenAI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message string `json:"message"`
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Context == "" {
		req.Context = "cat"
	}

	reply, err := s.persona.Reply(r.Context(), req.Message)
	if errors.Is(err, persona.ErrEmptyMessage) {
		apiError(w, "Message is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logFor(r).Error().Err(err).Str("context", req.Context).Msg("persona reply failed")
		apiJSON(w, map[string]string{
			"error":   "Failed to generate response from Golden",
			"details": err.Error(),
		}, http.StatusInternalServerError)
		return
	}

	s.logFor(r).Debug().Str("context", req.Context).Msg("persona replied")
	apiJSON(w, reply, http.StatusOK)
}

// handleAPIRandomUser returns a random visitor profile. It never fails.
func (s *Server) handleAPIRandomUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	apiJSON(w, s.directory.FetchProfile(r.Context()), http.StatusOK)
}
