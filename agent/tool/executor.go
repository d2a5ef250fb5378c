package tool

import (
	"context"
	"encoding/json"
	"fmt"

	contractx "github.com/warasiri/storeboard/agent/contract"
)

// Executor resolves one tool call against a backend and returns the result
// as a JSON document for the model's tool message.
type Executor func(ctx context.Context, tool string, args map[string]any) (string, error)

// NewExecutor dispatches the catalog's tool names to a backend. Backend
// failures and unknown tools surface as an error payload the model can
// read, not as a Go error; only marshalling problems return an error.
func NewExecutor(backend contractx.ToolBackend) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (string, error) {
		switch tool {
		case ToolGetStoreInfo:
			storeID, err := argString(args, "store_id")
			if err != nil {
				return errorPayload(err)
			}
			info, err := backend.StoreInfo(ctx, storeID)
			if err != nil {
				return errorPayload(err)
			}
			return marshalPayload(info)
		case ToolGetB2BData:
			storeID, err := argString(args, "store_id")
			if err != nil {
				return errorPayload(err)
			}
			data, err := backend.B2BData(ctx, storeID)
			if err != nil {
				return errorPayload(err)
			}
			return marshalPayload(data)
		case ToolOnboardUser:
			details, err := onboardingDetails(args)
			if err != nil {
				return errorPayload(err)
			}
			receipt, err := backend.OnboardUser(ctx, details)
			if err != nil {
				return errorPayload(err)
			}
			return marshalPayload(receipt)
		default:
			return errorPayload(fmt.Errorf("unknown tool %q", tool))
		}
	}
}

func onboardingDetails(args map[string]any) (contractx.OnboardingDetails, error) {
	var details contractx.OnboardingDetails
	var err error
	if details.StoreID, err = argString(args, "store_id"); err != nil {
		return details, err
	}
	if details.TeamName, err = argString(args, "team_name"); err != nil {
		return details, err
	}
	if details.ProfileName, err = argString(args, "profile_name"); err != nil {
		return details, err
	}
	if details.SelectedProfiles, err = argStringList(args, "selected_profiles"); err != nil {
		return details, err
	}
	if details.SelectedIdentities, err = argStringList(args, "selected_identities"); err != nil {
		return details, err
	}
	return details, nil
}

func argString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}

func argStringList(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("%s is required", key)
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be a list of strings", key)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a list of strings", key)
	}
}

func marshalPayload(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal tool result: %w", err)
	}
	return string(b), nil
}

func errorPayload(err error) (string, error) {
	return marshalPayload(map[string]string{"error": err.Error()})
}
