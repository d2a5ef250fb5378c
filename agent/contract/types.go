package contract

// AgentRole selects model configuration for the two LLM call sites.
type AgentRole string

const (
	RoleOnboarder AgentRole = "onboarder"
	RoleExtractor AgentRole = "extractor"
)

// StoreInfo is the lookup result for a store id. Field names are part of the
// tool wire contract.
type StoreInfo struct {
	TeamName    string `json:"team_name"`
	ProfileName string `json:"profile_name"`
}

// B2BData holds the selectable candidate sets fetched for a store.
type B2BData struct {
	Profiles   []string `json:"profiles"`
	Identities []string `json:"identities"`
}

// OnboardingDetails is the full input to the onboard_user operation, echoed
// back in the receipt.
type OnboardingDetails struct {
	StoreID            string   `json:"store_id"`
	TeamName           string   `json:"team_name"`
	ProfileName        string   `json:"profile_name"`
	SelectedProfiles   []string `json:"selected_profiles"`
	SelectedIdentities []string `json:"selected_identities"`
}

// OnboardingReceipt is the onboard_user result.
type OnboardingReceipt struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	OnboardingID string            `json:"onboarding_id"`
	UserDetails  OnboardingDetails `json:"user_details"`
}
