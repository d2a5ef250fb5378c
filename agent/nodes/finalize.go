package workflownode

import (
	"fmt"

	contractx "github.com/warasiri/storeboard/agent/contract"
	statex "github.com/warasiri/storeboard/agent/state"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Session == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	return GraphOutput{
		Reply:     in.Reply,
		Record:    in.Session.Record.Clone(),
		Completed: in.Session.Record.Step == statex.StepCompleted,
	}, nil
}
