package tool

import "github.com/cloudwego/eino/schema"

// Tool names are part of the external wire contract and must match the
// names registered on the tool server.
const (
	ToolGetStoreInfo = "get_profile_and_team_name_by_store_id"
	ToolGetB2BData   = "get_b2b_profiles_and_identities_by_store_id"
	ToolOnboardUser  = "onboard_user"
)

// Infos returns the tool definitions bound to the onboarding agent model.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolGetStoreInfo,
			Desc: "Get team name and profile name for a given store ID.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"store_id": {Type: schema.String, Desc: "The store ID to lookup", Required: true},
			}),
		},
		{
			Name: ToolGetB2BData,
			Desc: "Get selectable B2B profiles and identities for a given store ID.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"store_id": {Type: schema.String, Desc: "The store ID to lookup", Required: true},
			}),
		},
		{
			Name: ToolOnboardUser,
			Desc: "Complete the onboarding process with the collected information.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"store_id":     {Type: schema.String, Desc: "The store ID", Required: true},
				"team_name":    {Type: schema.String, Desc: "The team name", Required: true},
				"profile_name": {Type: schema.String, Desc: "The profile name", Required: true},
				"selected_profiles": {
					Type:     schema.Array,
					Desc:     "Selected B2B profiles",
					ElemInfo: &schema.ParameterInfo{Type: schema.String},
					Required: true,
				},
				"selected_identities": {
					Type:     schema.Array,
					Desc:     "Selected B2B identities",
					ElemInfo: &schema.ParameterInfo{Type: schema.String},
					Required: true,
				},
			}),
		},
	}
}
