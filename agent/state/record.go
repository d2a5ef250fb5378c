package state

import "strings"

// Step is the workflow phase of an onboarding record.
type Step string

const (
	StepCollectStoreID    Step = "collect_store_id"
	StepFetchStoreInfo    Step = "fetch_store_info"
	StepFetchB2BData      Step = "fetch_b2b_data"
	StepCollectSelections Step = "collect_selections"
	StepInProgress        Step = "in_progress"
	StepCompleted         Step = "completed"
)

// OnboardingRecord is the canonical progress object for one session.
// Step is always recomputed from the other fields; a step value written by
// the extraction oracle is advisory only.
type OnboardingRecord struct {
	StoreID            string   `json:"store_id"`
	TeamName           string   `json:"team_name"`
	ProfileName        string   `json:"profile_name"`
	B2BProfiles        []string `json:"b2b_profiles"`
	B2BIdentities      []string `json:"b2b_identities"`
	SelectedProfiles   []string `json:"selected_profiles"`
	SelectedIdentities []string `json:"selected_identities"`
	Step               Step     `json:"step"`
}

// NewRecord returns the empty record every session starts from.
func NewRecord() OnboardingRecord {
	return OnboardingRecord{Step: StepCollectStoreID}
}

// placeholder the oracle uses for fields it considers unchanged or unknown.
const nonePlaceholder = "None"

// Apply merges an extraction update map into the record. Only known field
// names are applied, values equal to the literal "None" are skipped, and
// later values win even when empty. A "step" key is accepted but carries no
// weight: Recompute overwrites it.
func (r *OnboardingRecord) Apply(updates map[string]any) {
	for key, value := range updates {
		if s, ok := value.(string); ok && s == nonePlaceholder {
			continue
		}
		switch key {
		case "store_id":
			if s, ok := value.(string); ok {
				r.StoreID = s
			}
		case "team_name":
			if s, ok := value.(string); ok {
				r.TeamName = s
			}
		case "profile_name":
			if s, ok := value.(string); ok {
				r.ProfileName = s
			}
		case "b2b_profiles":
			if l, ok := asStringList(value); ok {
				r.B2BProfiles = l
			}
		case "b2b_identities":
			if l, ok := asStringList(value); ok {
				r.B2BIdentities = l
			}
		case "selected_profiles":
			if l, ok := asStringList(value); ok {
				r.SelectedProfiles = l
			}
		case "selected_identities":
			if l, ok := asStringList(value); ok {
				r.SelectedIdentities = l
			}
		case "step":
			if s, ok := value.(string); ok {
				r.Step = Step(s)
			}
		}
	}
}

// Recompute sets Step from the data fields and the latest assistant text.
func (r *OnboardingRecord) Recompute(latestAssistantText string) {
	r.Step = ComputeStep(*r, latestAssistantText)
}

// ComputeStep derives the workflow phase. Rules are evaluated in priority
// order and the first match wins, so "completed" is unreachable while any
// upstream field is still missing.
func ComputeStep(r OnboardingRecord, latestAssistantText string) Step {
	switch {
	case r.StoreID == "":
		return StepCollectStoreID
	case r.TeamName == "" || r.ProfileName == "":
		return StepFetchStoreInfo
	case len(r.B2BProfiles) == 0 || len(r.B2BIdentities) == 0:
		return StepFetchB2BData
	case len(r.SelectedProfiles) == 0 || len(r.SelectedIdentities) == 0:
		return StepCollectSelections
	case containsCompletionSignal(latestAssistantText):
		return StepCompleted
	default:
		return StepInProgress
	}
}

func containsCompletionSignal(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "onboarding completed") || strings.Contains(lower, "successfully")
}

// Clone returns a deep copy of the record.
func (r OnboardingRecord) Clone() OnboardingRecord {
	out := r
	out.B2BProfiles = cloneList(r.B2BProfiles)
	out.B2BIdentities = cloneList(r.B2BIdentities)
	out.SelectedProfiles = cloneList(r.SelectedProfiles)
	out.SelectedIdentities = cloneList(r.SelectedIdentities)
	return out
}

func cloneList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// asStringList coerces a decoded JSON value into a string slice. JSON
// arrays arrive as []any; anything else is rejected.
func asStringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
