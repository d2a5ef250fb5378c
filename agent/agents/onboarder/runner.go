// Package onboarder drives the tool-calling dialogue turn: one model call
// chain that may resolve onboarding tools before producing the assistant
// reply for the user.
package onboarder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/warasiri/storeboard/agent/contract"
	statex "github.com/warasiri/storeboard/agent/state"
	toolx "github.com/warasiri/storeboard/agent/tool"
)

// maxToolIterations bounds the generate/execute loop for one turn.
const maxToolIterations = 5

type Runner struct {
	model        einomodel.ToolCallingChatModel
	execute      toolx.Executor
	systemPrompt string
}

var _ contractx.TurnRunner = (*Runner)(nil)

func New(chatModel einomodel.ToolCallingChatModel, execute toolx.Executor, systemPrompt string) (*Runner, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	if execute == nil {
		return nil, fmt.Errorf("%w: tool executor is required", contractx.ErrValidation)
	}

	toolModel, err := chatModel.WithTools(toolx.Infos())
	if err != nil {
		return nil, fmt.Errorf("%w: bind onboarding tools: %v", contractx.ErrAgentTurn, err)
	}

	return &Runner{
		model:        toolModel,
		execute:      execute,
		systemPrompt: strings.TrimSpace(systemPrompt),
	}, nil
}

// RunTurn produces exactly one assistant reply for the history. Tool-call
// exchanges stay internal to the turn; only the final text is returned.
func (r *Runner) RunTurn(ctx context.Context, history []statex.Message, rec statex.OnboardingRecord) (string, error) {
	msgs, err := r.buildMessages(history, rec)
	if err != nil {
		return "", err
	}

	for i := 0; i < maxToolIterations; i++ {
		out, err := r.model.Generate(ctx, msgs)
		if err != nil {
			return "", fmt.Errorf("%w: model generate: %v", contractx.ErrAgentTurn, err)
		}

		if len(out.ToolCalls) == 0 {
			reply := strings.TrimSpace(out.Content)
			if reply == "" {
				return "", fmt.Errorf("%w: model returned empty reply", contractx.ErrAgentTurn)
			}
			return reply, nil
		}

		msgs = append(msgs, out)
		for _, call := range out.ToolCalls {
			result, err := r.executeCall(ctx, call)
			if err != nil {
				return "", err
			}
			msgs = append(msgs, schema.ToolMessage(result, call.ID))
		}
	}

	return "", fmt.Errorf("%w: tool iteration limit reached", contractx.ErrAgentTurn)
}

func (r *Runner) buildMessages(history []statex.Message, rec statex.OnboardingRecord) ([]*schema.Message, error) {
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal record: %v", contractx.ErrAgentTurn, err)
	}

	msgs := make([]*schema.Message, 0, len(history)+1)
	msgs = append(msgs, schema.SystemMessage(
		r.systemPrompt+"\n\nCurrent onboarding state:\n"+string(recJSON),
	))
	for _, m := range history {
		switch m.Role {
		case statex.RoleUser:
			msgs = append(msgs, schema.UserMessage(m.Content))
		case statex.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		}
	}
	return msgs, nil
}

func (r *Runner) executeCall(ctx context.Context, call schema.ToolCall) (string, error) {
	name := strings.TrimSpace(call.Function.Name)
	if name == "" {
		return "", fmt.Errorf("%w: tool call name is empty", contractx.ErrAgentTurn)
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return "", fmt.Errorf("%w: invalid args for tool=%s: %v", contractx.ErrAgentTurn, name, err)
		}
	}

	log.Debug().Str("tool", name).Msg("resolving tool call")
	result, err := r.execute(ctx, name, args)
	if err != nil {
		return "", fmt.Errorf("%w: execute tool=%s: %v", contractx.ErrAgentTurn, name, err)
	}
	return result, nil
}
