// Package server provides the HTTP boundary for the onboarding workflow.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/warasiri/storeboard/agent/agents/workflow"
	contractx "github.com/warasiri/storeboard/agent/contract"
	statex "github.com/warasiri/storeboard/agent/state"
)

// DefaultSessionID is used when a chat request carries no session ID.
const DefaultSessionID = "default"

// ChatService is the workflow surface the HTTP handlers depend on.
type ChatService interface {
	ProcessMessage(ctx context.Context, sessionID, text string) (workflow.TurnResult, error)
	SessionState(ctx context.Context, sessionID string) (statex.OnboardingRecord, error)
	ResetSession(ctx context.Context, sessionID string) error
}

// Handler serves chat and session endpoints.
type Handler struct {
	svc ChatService
}

// NewHandler creates a Handler backed by the given chat service.
func NewHandler(svc ChatService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all chat and session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Health)
	r.Post("/chat", h.Chat)
	r.Get("/session/{sessionID}/state", h.SessionState)
	r.Delete("/session/{sessionID}", h.ResetSession)
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string                  `json:"response"`
	SessionID string                  `json:"session_id"`
	State     statex.OnboardingRecord `json:"state"`
	Completed bool                    `json:"completed"`
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storeboard"})
}

// Chat runs one conversational turn against the onboarding workflow.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	result, err := h.svc.ProcessMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("chat turn failed")
		Error(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	JSON(w, http.StatusOK, chatResponse{
		Response:  result.Reply,
		SessionID: sessionID,
		State:     result.Record,
		Completed: result.Completed,
	})
}

// SessionState returns the current onboarding record for a session.
// Unknown sessions report a fresh record rather than an error.
func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	record, err := h.svc.SessionState(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("session state lookup failed")
		Error(w, http.StatusInternalServerError, "failed to load session state")
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"state":      record,
	})
}

// ResetSession discards all stored conversation and onboarding state.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.svc.ResetSession(r.Context(), sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("session reset failed")
		Error(w, http.StatusInternalServerError, "failed to reset session")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Session reset successfully"})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
