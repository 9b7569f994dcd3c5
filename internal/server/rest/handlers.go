package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/promptmarket/internal/common"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
)

const (
	msgCreated          = "Prompt added successfully"
	msgNotFound         = "Prompt not found"
	msgMethodNotAllowed = "Method not allowed"
	msgConflict         = "Prompt was modified concurrently, please retry"
	msgInternal         = "Internal server error"
	msgInvalidJSON      = "request body must be a valid JSON object"
)

type createResponse struct {
	Success bool           `json:"success"`
	Prompt  *models.Prompt `json:"prompt"`
	Message string         `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors []string `json:"errors"`
}

func (s *Server) listPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := s.prompts.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if prompts == nil {
		prompts = []*models.Prompt{}
	}
	writeJSON(w, http.StatusOK, prompts)
}

func (s *Server) createPrompt(w http.ResponseWriter, r *http.Request) {
	var in models.PromptInput
	if !s.decode(w, r, &in) {
		return
	}

	p, err := s.prompts.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{Success: true, Prompt: p, Message: msgCreated})
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	var in models.CommentInput
	if !s.decode(w, r, &in) {
		return
	}

	p, err := s.prompts.AddComment(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{Success: true, Prompt: p})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: msgMethodNotAllowed})
}

// decode reads a size-capped JSON body into dst. On failure it has already
// written a 400 and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Debug(r.Context(), "rejecting request body", "error", err)
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: []string{msgInvalidJSON}})
		return false
	}
	return true
}

// writeError maps service errors onto status codes. Store and unexpected
// failures only ever expose a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verr.Messages})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNotFound})
	case errors.Is(err, common.ErrVersionConflict):
		s.logger.Warn(r.Context(), "update gave up after conflicts", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusConflict, errorResponse{Error: msgConflict})
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
