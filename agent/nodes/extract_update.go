package workflownode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/warasiri/storeboard/agent/contract"
)

// ExtractAndApply runs the state-extraction step on the new assistant reply
// and merges the update map into the record. Extraction failures are logged
// and leave the record's data fields unchanged; the step is recomputed from
// whatever the record holds afterwards, so it stays consistent either way.
func ExtractAndApply(ctx context.Context, in *GraphState, extractor contractx.Extractor) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if !in.AgentFailed {
		updates, err := extractor.Extract(ctx, in.Session.Record, in.Reply)
		if err != nil {
			log.Warn().Err(err).Str("session_id", in.SessionID).Msg("state extraction failed, keeping record")
		} else {
			in.Session.Record.Apply(updates)
		}
	}

	in.Session.Record.Recompute(in.Reply)
	return in, nil
}
