package workflownode

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/warasiri/storeboard/agent/contract"
	statex "github.com/warasiri/storeboard/agent/state"
)

var (
	ErrInvalidMessage = fmt.Errorf("%w: message is empty", contractx.ErrValidation)
	ErrInvalidSession = fmt.Errorf("%w: session id is empty", contractx.ErrValidation)
)

// apologyReply is the fixed user-visible response when the agent step fails.
const apologyReply = "I'm sorry, I couldn't process your request."

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply     string
	Record    statex.OnboardingRecord
	Completed bool
}

type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session *statex.Session

	Reply       string
	AgentFailed bool
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
