// Package workflow sequences one onboarding turn: agent reply first, then
// state extraction and step recomputation, then the session commit.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/warasiri/storeboard/agent/contract"
	nodex "github.com/warasiri/storeboard/agent/nodes"
	statex "github.com/warasiri/storeboard/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

// TurnResult is the externally visible outcome of one processed turn.
type TurnResult struct {
	Reply     string
	Record    statex.OnboardingRecord
	Completed bool
}

type Service struct {
	store     statex.Store
	runner    contractx.TurnRunner
	extractor contractx.Extractor

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(store statex.Store, runner contractx.TurnRunner, extractor contractx.Extractor) (*Service, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if runner == nil {
		return nil, errors.New("turn runner is required")
	}
	if extractor == nil {
		return nil, errors.New("extractor is required")
	}

	s := &Service{
		store:     store,
		runner:    runner,
		extractor: extractor,
		now:       time.Now,
	}

	graphRunner, err := s.compileProcessMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// ProcessMessage runs one full turn for the session. The session is saved
// only after the whole turn succeeds; any failure leaves stored state as it
// was before the turn.
func (s *Service) ProcessMessage(ctx context.Context, sessionID string, text string) (TurnResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return TurnResult{}, ErrInvalidSession
	}
	if strings.TrimSpace(text) == "" {
		return TurnResult{}, ErrInvalidMessage
	}

	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return TurnResult{}, fmt.Errorf("%w: %v", contractx.ErrTurn, err)
	}

	return TurnResult{
		Reply:     out.Reply,
		Record:    out.Record,
		Completed: out.Completed,
	}, nil
}

// SessionState returns the current record for a session, or the default
// empty record when the session has never been seen.
func (s *Service) SessionState(ctx context.Context, sessionID string) (statex.OnboardingRecord, error) {
	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, statex.ErrStateNotFound) {
			return statex.NewRecord(), nil
		}
		return statex.OnboardingRecord{}, err
	}
	return sess.Record.Clone(), nil
}

// ResetSession deletes the session's record and history; the next turn for
// this id starts from scratch.
func (s *Service) ResetSession(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
