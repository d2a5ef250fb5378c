package contract

import (
	"context"

	statex "github.com/warasiri/storeboard/agent/state"
)

// ToolBackend exposes the three remote tool operations as local callables.
// Implemented by the MCP gateway client and by the in-process mock.
type ToolBackend interface {
	StoreInfo(ctx context.Context, storeID string) (StoreInfo, error)
	B2BData(ctx context.Context, storeID string) (B2BData, error)
	OnboardUser(ctx context.Context, details OnboardingDetails) (OnboardingReceipt, error)
}

// TurnRunner produces exactly one new assistant message for the given
// history and record, resolving tool calls internally.
type TurnRunner interface {
	RunTurn(ctx context.Context, history []statex.Message, rec statex.OnboardingRecord) (string, error)
}

// Extractor asks the reasoning oracle which record fields the latest
// assistant message changed. The returned map holds only new or changed
// fields; parse failures are reported as ErrExtractParse.
type Extractor interface {
	Extract(ctx context.Context, rec statex.OnboardingRecord, assistantText string) (map[string]any, error)
}
