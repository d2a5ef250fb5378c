package state

import (
	"errors"
	"time"
)

var (
	ErrStateNotFound  = errors.New("session not found")
	ErrNilSession     = errors.New("session is nil")
	ErrInvalidSession = errors.New("session id is empty")
)

// Role tags the origin of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the append-only conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session owns exactly one onboarding record and one message history.
type Session struct {
	SessionID string           `json:"session_id"`
	Record    OnboardingRecord `json:"record"`
	Messages  []Message        `json:"messages,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewSession returns a fresh session with an empty record.
func NewSession(sessionID string, now time.Time) *Session {
	return &Session{
		SessionID: sessionID,
		Record:    NewRecord(),
		UpdatedAt: now.UTC(),
	}
}

func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// AppendUser appends a user-origin message to the history.
func (s *Session) AppendUser(text string) {
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: text})
}

// AppendAssistant appends an assistant-origin message to the history.
func (s *Session) AppendAssistant(text string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: text})
}

// LatestAssistantText returns the content of the newest assistant message,
// or the empty string when none exists.
func (s *Session) LatestAssistantText() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i].Content
		}
	}
	return ""
}

// Clone returns a deep copy so callers never alias registry-held state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := &Session{
		SessionID: s.SessionID,
		Record:    s.Record.Clone(),
		UpdatedAt: s.UpdatedAt,
	}
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	return out
}
