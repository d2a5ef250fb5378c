package toolserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	contractx "github.com/warasiri/storeboard/agent/contract"
)

type handlers struct {
	backend contractx.ToolBackend
}

func (h *handlers) HandleStoreInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := requiredString(req, "store_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := h.backend.StoreInfo(ctx, storeID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store info lookup failed: %v", err)), nil
	}
	return textResult(info)
}

func (h *handlers) HandleB2BData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := requiredString(req, "store_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := h.backend.B2BData(ctx, storeID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("b2b data lookup failed: %v", err)), nil
	}
	return textResult(data)
}

func (h *handlers) HandleOnboardUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	details := contractx.OnboardingDetails{}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"store_id", &details.StoreID},
		{"team_name", &details.TeamName},
		{"profile_name", &details.ProfileName},
	} {
		v, err := requiredString(req, f.name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		*f.dst = v
	}

	var err error
	details.SelectedProfiles, err = stringList(args, "selected_profiles")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	details.SelectedIdentities, err = stringList(args, "selected_identities")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	receipt, err := h.backend.OnboardUser(ctx, details)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("onboarding failed: %v", err)), nil
	}
	return textResult(receipt)
}

func requiredString(req mcp.CallToolRequest, name string) (string, error) {
	v, ok := req.GetArguments()[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required and must be a string", name)
	}
	return v, nil
}

func stringList(args map[string]any, name string) ([]string, error) {
	raw, ok := args[name].([]any)
	if !ok {
		return nil, fmt.Errorf("%s is required and must be a list of strings", name)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must contain only strings", name)
		}
		out = append(out, s)
	}
	return out, nil
}

func textResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
