package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/warasiri/storeboard/agent/agents/workflow"
	contractx "github.com/warasiri/storeboard/agent/contract"
	statex "github.com/warasiri/storeboard/agent/state"
)

type fakeChatService struct {
	result workflow.TurnResult
	err    error

	processed []string
	sessions  []string
	resets    []string
	stateRec  statex.OnboardingRecord
	stateErr  error
	resetErr  error
}

func (f *fakeChatService) ProcessMessage(ctx context.Context, sessionID, text string) (workflow.TurnResult, error) {
	f.sessions = append(f.sessions, sessionID)
	f.processed = append(f.processed, text)
	if f.err != nil {
		return workflow.TurnResult{}, f.err
	}
	return f.result, nil
}

func (f *fakeChatService) SessionState(ctx context.Context, sessionID string) (statex.OnboardingRecord, error) {
	f.sessions = append(f.sessions, sessionID)
	if f.stateErr != nil {
		return statex.OnboardingRecord{}, f.stateErr
	}
	return f.stateRec, nil
}

func (f *fakeChatService) ResetSession(ctx context.Context, sessionID string) error {
	f.resets = append(f.resets, sessionID)
	return f.resetErr
}

func newTestRouter(svc ChatService) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v (%q)", err, rec.Body.String())
	}
	return rec, decoded
}

func TestChatHappyPath(t *testing.T) {
	t.Parallel()

	svc := &fakeChatService{
		result: workflow.TurnResult{
			Reply: "Please share your store ID.",
			Record: statex.OnboardingRecord{
				Step: statex.StepCollectStoreID,
			},
		},
	}
	router := newTestRouter(svc)

	rec, body := doJSON(t, router, http.MethodPost, "/chat", `{"message": "hi", "session_id": "s1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, body)
	}
	if body["response"] != "Please share your store ID." {
		t.Fatalf("unexpected response field: %v", body["response"])
	}
	if body["session_id"] != "s1" {
		t.Fatalf("unexpected session_id: %v", body["session_id"])
	}
	state, ok := body["state"].(map[string]any)
	if !ok {
		t.Fatalf("state is not an object: %v", body["state"])
	}
	if state["step"] != string(statex.StepCollectStoreID) {
		t.Fatalf("unexpected step: %v", state["step"])
	}
	if body["completed"] != false {
		t.Fatalf("unexpected completed flag: %v", body["completed"])
	}
}

func TestChatDefaultsSessionID(t *testing.T) {
	t.Parallel()

	svc := &fakeChatService{}
	router := newTestRouter(svc)

	rec, _ := doJSON(t, router, http.MethodPost, "/chat", `{"message": "hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.sessions) != 1 || svc.sessions[0] != DefaultSessionID {
		t.Fatalf("expected default session id, got %v", svc.sessions)
	}
}

func TestChatRejectsBadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "store please"},
		{"missing message", `{"session_id": "s1"}`},
		{"blank message", `{"message": "   "}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeChatService{}
			router := newTestRouter(svc)

			rec, body := doJSON(t, router, http.MethodPost, "/chat", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %v", rec.Code, body)
			}
			if len(svc.processed) != 0 {
				t.Fatalf("service must not be called, got %v", svc.processed)
			}
		})
	}
}

func TestChatValidationErrorMapsTo400(t *testing.T) {
	t.Parallel()

	svc := &fakeChatService{err: workflow.ErrInvalidMessage}
	router := newTestRouter(svc)

	rec, body := doJSON(t, router, http.MethodPost, "/chat", `{"message": "x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %v", rec.Code, body)
	}
	if !errors.Is(workflow.ErrInvalidMessage, contractx.ErrValidation) {
		t.Fatal("ErrInvalidMessage must be a validation error")
	}
}

func TestChatServiceFailureMapsTo500(t *testing.T) {
	t.Parallel()

	svc := &fakeChatService{err: errors.New("workflow down")}
	router := newTestRouter(svc)

	rec, body := doJSON(t, router, http.MethodPost, "/chat", `{"message": "x"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %v", rec.Code, body)
	}
	if body["error"] == "" {
		t.Fatalf("expected error payload, got %v", body)
	}
}

func TestSessionStateEndpoint(t *testing.T) {
	t.Parallel()

	svc := &fakeChatService{
		stateRec: statex.OnboardingRecord{
			StoreID: "STORE-42",
			Step:    statex.StepFetchStoreInfo,
		},
	}
	router := newTestRouter(svc)

	rec, body := doJSON(t, router, http.MethodGet, "/session/s1/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, body)
	}
	if body["session_id"] != "s1" {
		t.Fatalf("unexpected session_id: %v", body["session_id"])
	}
	state, ok := body["state"].(map[string]any)
	if !ok {
		t.Fatalf("state is not an object: %v", body["state"])
	}
	if state["store_id"] != "STORE-42" {
		t.Fatalf("unexpected store_id: %v", state["store_id"])
	}
}

func TestResetSessionEndpoint(t *testing.T) {
	t.Parallel()

	svc := &fakeChatService{}
	router := newTestRouter(svc)

	rec, body := doJSON(t, router, http.MethodDelete, "/session/s1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, body)
	}
	if body["message"] != "Session reset successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if len(svc.resets) != 1 || svc.resets[0] != "s1" {
		t.Fatalf("expected reset of s1, got %v", svc.resets)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeChatService{})

	rec, body := doJSON(t, router, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}
