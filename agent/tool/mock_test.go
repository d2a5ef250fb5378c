package tool

import (
	"context"
	"reflect"
	"strings"
	"testing"

	contractx "github.com/warasiri/storeboard/agent/contract"
)

func TestMockStoreInfoIsDeterministic(t *testing.T) {
	t.Parallel()

	b := NewMockBackend()
	ctx := context.Background()

	first, err := b.StoreInfo(ctx, "STORE-42")
	if err != nil {
		t.Fatalf("store info failed: %v", err)
	}
	second, err := b.StoreInfo(ctx, "STORE-42")
	if err != nil {
		t.Fatalf("store info failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results for same store id: %+v vs %+v", first, second)
	}
	if first.TeamName == "" || first.ProfileName == "" {
		t.Fatalf("expected non-empty names, got %+v", first)
	}
}

func TestMockStoreInfoDrawsFromKnownPools(t *testing.T) {
	t.Parallel()

	b := NewMockBackend()
	info, err := b.StoreInfo(context.Background(), "any-store")
	if err != nil {
		t.Fatalf("store info failed: %v", err)
	}

	if !contains(teamNames, info.TeamName) {
		t.Fatalf("team name %q not in pool", info.TeamName)
	}
	if !contains(profileNames, info.ProfileName) {
		t.Fatalf("profile name %q not in pool", info.ProfileName)
	}
}

func TestMockB2BDataIsDeterministicAndBounded(t *testing.T) {
	t.Parallel()

	b := NewMockBackend()
	ctx := context.Background()

	first, err := b.B2BData(ctx, "STORE-42")
	if err != nil {
		t.Fatalf("b2b data failed: %v", err)
	}
	second, err := b.B2BData(ctx, "STORE-42")
	if err != nil {
		t.Fatalf("b2b data failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results for same store id: %+v vs %+v", first, second)
	}

	for _, lists := range []struct {
		name  string
		items []string
		pool  []string
	}{
		{"profiles", first.Profiles, b2bProfiles},
		{"identities", first.Identities, b2bIdentities},
	} {
		if len(lists.items) < 2 || len(lists.items) > 5 {
			t.Fatalf("%s size out of range: %d", lists.name, len(lists.items))
		}
		seen := map[string]bool{}
		for _, item := range lists.items {
			if !contains(lists.pool, item) {
				t.Fatalf("%s entry %q not in pool", lists.name, item)
			}
			if seen[item] {
				t.Fatalf("%s entry %q duplicated", lists.name, item)
			}
			seen[item] = true
		}
	}
}

func TestMockOnboardUserReceipt(t *testing.T) {
	t.Parallel()

	b := NewMockBackend()
	details := contractx.OnboardingDetails{
		StoreID:            "STORE-42",
		TeamName:           "Alpha Team",
		ProfileName:        "Enterprise Profile",
		SelectedProfiles:   []string{"Retail Profile"},
		SelectedIdentities: []string{"Admin Identity"},
	}

	receipt, err := b.OnboardUser(context.Background(), details)
	if err != nil {
		t.Fatalf("onboard user failed: %v", err)
	}
	if receipt.Status != "success" {
		t.Fatalf("unexpected status %q", receipt.Status)
	}
	if !strings.Contains(receipt.Message, "successfully") {
		t.Fatalf("message missing completion signal: %q", receipt.Message)
	}
	if !strings.HasPrefix(receipt.OnboardingID, "ONB-") || len(receipt.OnboardingID) != 8 {
		t.Fatalf("unexpected onboarding id %q", receipt.OnboardingID)
	}
	if !reflect.DeepEqual(receipt.UserDetails, details) {
		t.Fatalf("details not echoed back: %+v", receipt.UserDetails)
	}

	// Same store id yields the same onboarding id.
	again, err := b.OnboardUser(context.Background(), details)
	if err != nil {
		t.Fatalf("onboard user failed: %v", err)
	}
	if again.OnboardingID != receipt.OnboardingID {
		t.Fatalf("onboarding id not deterministic: %q vs %q", again.OnboardingID, receipt.OnboardingID)
	}
}

func contains(pool []string, item string) bool {
	for _, p := range pool {
		if p == item {
			return true
		}
	}
	return false
}
