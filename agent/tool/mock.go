package tool

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/warasiri/storeboard/agent/contract"
)

var teamNames = []string{
	"Alpha Team", "Beta Squad", "Gamma Force", "Delta Unit",
	"Echo Group", "Foxtrot Division", "Golf Section", "Hotel Brigade",
}

var profileNames = []string{
	"Enterprise Profile", "Business Profile", "Premium Profile",
	"Standard Profile", "Advanced Profile", "Professional Profile",
	"Corporate Profile", "Executive Profile",
}

var b2bProfiles = []string{
	"Manufacturing Profile", "Retail Profile", "Healthcare Profile",
	"Technology Profile", "Finance Profile", "Education Profile",
	"Government Profile", "Non-Profit Profile", "Automotive Profile",
	"Real Estate Profile",
}

var b2bIdentities = []string{
	"Admin Identity", "Manager Identity", "Operator Identity",
	"Viewer Identity", "Editor Identity", "Analyst Identity",
	"Supervisor Identity", "Coordinator Identity", "Specialist Identity",
	"Executive Identity",
}

// MockBackend is the in-process tool implementation. Responses are
// deterministic per store id so the gateway fallback path returns exactly
// what the live tool server would.
type MockBackend struct{}

var _ contractx.ToolBackend = MockBackend{}

func NewMockBackend() MockBackend {
	return MockBackend{}
}

func (MockBackend) StoreInfo(ctx context.Context, storeID string) (contractx.StoreInfo, error) {
	idx := int(storeHash(storeID)) % len(teamNames)
	info := contractx.StoreInfo{
		TeamName:    teamNames[idx],
		ProfileName: profileNames[idx%len(profileNames)],
	}
	log.Debug().Str("store_id", storeID).Interface("result", info).Msg("mock store lookup")
	return info, nil
}

func (MockBackend) B2BData(ctx context.Context, storeID string) (contractx.B2BData, error) {
	r := rand.New(rand.NewSource(int64(storeHash(storeID))))
	data := contractx.B2BData{
		Profiles:   sample(r, b2bProfiles, 2+r.Intn(4)),
		Identities: sample(r, b2bIdentities, 2+r.Intn(4)),
	}
	log.Debug().Str("store_id", storeID).Interface("result", data).Msg("mock b2b lookup")
	return data, nil
}

func (MockBackend) OnboardUser(ctx context.Context, details contractx.OnboardingDetails) (contractx.OnboardingReceipt, error) {
	log.Info().
		Str("store_id", details.StoreID).
		Str("team_name", details.TeamName).
		Str("profile_name", details.ProfileName).
		Str("selected_profiles", strings.Join(details.SelectedProfiles, ", ")).
		Str("selected_identities", strings.Join(details.SelectedIdentities, ", ")).
		Msg("user onboarding initiated")

	return contractx.OnboardingReceipt{
		Status:       "success",
		Message:      "User onboarding process initiated successfully",
		OnboardingID: fmt.Sprintf("ONB-%04d", storeHash(details.StoreID)%10000),
		UserDetails:  details,
	}, nil
}

func storeHash(storeID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(storeID))
	return h.Sum32()
}

// sample picks n distinct items, preserving the permutation order given by
// the seeded source.
func sample(r *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, idx := range r.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}
