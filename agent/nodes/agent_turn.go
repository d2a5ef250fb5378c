package workflownode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/warasiri/storeboard/agent/contract"
)

// RunAgentTurn asks the turn runner for the assistant reply. Runner failures
// never abort the turn: the user receives the fixed apology and the record
// stays untouched for this turn.
func RunAgentTurn(ctx context.Context, in *GraphState, runner contractx.TurnRunner) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	reply, err := runner.RunTurn(ctx, in.Session.Messages, in.Session.Record)
	if err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("agent turn failed, replying with apology")
		in.Reply = apologyReply
		in.AgentFailed = true
	} else if strings.TrimSpace(reply) == "" {
		log.Warn().Str("session_id", in.SessionID).Msg("agent turn produced empty reply")
		in.Reply = apologyReply
		in.AgentFailed = true
	} else {
		in.Reply = reply
	}

	in.Session.AppendAssistant(in.Reply)
	return in, nil
}
