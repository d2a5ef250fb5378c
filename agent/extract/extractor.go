// Package extract implements the state-extraction call to the reasoning
// oracle: one plain completion per turn that reports which record fields
// the latest assistant message changed.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"

	contractx "github.com/warasiri/storeboard/agent/contract"
	promptx "github.com/warasiri/storeboard/agent/prompt"
	statex "github.com/warasiri/storeboard/agent/state"
)

const extractionTemperature = 0.1

type Extractor struct {
	client   *openaisdk.Client
	model    string
	template string

	// complete is swapped out in tests.
	complete func(ctx context.Context, prompt string) (string, error)
}

var _ contractx.Extractor = (*Extractor)(nil)

func New(client *openaisdk.Client, model string) *Extractor {
	e := &Extractor{
		client:   client,
		model:    strings.TrimSpace(model),
		template: promptx.LoadPromptSet().Extraction,
	}
	e.complete = e.chatComplete
	return e
}

// Extract renders the extraction prompt for the current record and assistant
// text, invokes the oracle, and parses the JSON update map. A response that
// is not a JSON object yields ErrExtractParse.
func (e *Extractor) Extract(ctx context.Context, rec statex.OnboardingRecord, assistantText string) (map[string]any, error) {
	raw, err := e.complete(ctx, renderPrompt(e.template, rec, assistantText))
	if err != nil {
		return nil, fmt.Errorf("extraction invoke: %w", err)
	}

	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", contractx.ErrExtractParse)
	}

	var updates map[string]any
	if err := json.Unmarshal([]byte(cleaned), &updates); err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrExtractParse, err)
	}
	return updates, nil
}

func (e *Extractor) chatComplete(ctx context.Context, prompt string) (string, error) {
	resp, err := e.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(e.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Temperature: openaisdk.Float(extractionTemperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func renderPrompt(template string, rec statex.OnboardingRecord, assistantText string) string {
	return strings.NewReplacer(
		"{store_id}", renderField(rec.StoreID),
		"{team_name}", renderField(rec.TeamName),
		"{profile_name}", renderField(rec.ProfileName),
		"{b2b_profiles}", renderList(rec.B2BProfiles),
		"{b2b_identities}", renderList(rec.B2BIdentities),
		"{selected_profiles}", renderList(rec.SelectedProfiles),
		"{selected_identities}", renderList(rec.SelectedIdentities),
		"{step}", string(rec.Step),
		"{ai_response}", assistantText,
	).Replace(template)
}

func renderField(v string) string {
	if v == "" {
		return "None"
	}
	return v
}

func renderList(v []string) string {
	if len(v) == 0 {
		return "None"
	}
	return strings.Join(v, ", ")
}

// stripCodeFences unwraps a markdown-fenced response so "```json\n{...}\n```"
// still parses.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
