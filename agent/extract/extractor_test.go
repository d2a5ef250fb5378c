package extract

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	contractx "github.com/warasiri/storeboard/agent/contract"
	statex "github.com/warasiri/storeboard/agent/state"
)

func newTestExtractor(complete func(ctx context.Context, prompt string) (string, error)) *Extractor {
	e := New(nil, "test-model")
	e.complete = complete
	return e
}

func TestExtractParsesPlainJSON(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(func(ctx context.Context, prompt string) (string, error) {
		return `{"store_id": "STORE-7", "team_name": "Alpha Team"}`, nil
	})

	updates, err := e.Extract(context.Background(), statex.NewRecord(), "your store is STORE-7")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := map[string]any{"store_id": "STORE-7", "team_name": "Alpha Team"}
	if !reflect.DeepEqual(updates, want) {
		t.Fatalf("unexpected updates: %v", updates)
	}
}

func TestExtractUnwrapsFencedJSON(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(func(ctx context.Context, prompt string) (string, error) {
		return "```json\n{\"store_id\": \"STORE-7\"}\n```", nil
	})

	updates, err := e.Extract(context.Background(), statex.NewRecord(), "reply")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if updates["store_id"] != "STORE-7" {
		t.Fatalf("unexpected updates: %v", updates)
	}
}

func TestExtractMalformedResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"prose", "I could not find anything."},
		{"empty", "   "},
		{"truncated", `{"store_id": "STO`},
		{"array not object", `["store_id"]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestExtractor(func(ctx context.Context, prompt string) (string, error) {
				return tt.raw, nil
			})

			_, err := e.Extract(context.Background(), statex.NewRecord(), "reply")
			if !errors.Is(err, contractx.ErrExtractParse) {
				t.Fatalf("expected ErrExtractParse, got %v", err)
			}
		})
	}
}

func TestExtractPropagatesCompletionError(t *testing.T) {
	t.Parallel()

	boom := errors.New("oracle unavailable")
	e := newTestExtractor(func(ctx context.Context, prompt string) (string, error) {
		return "", boom
	})

	_, err := e.Extract(context.Background(), statex.NewRecord(), "reply")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped oracle error, got %v", err)
	}
	if errors.Is(err, contractx.ErrExtractParse) {
		t.Fatalf("transport failure misreported as parse failure: %v", err)
	}
}

func TestExtractRendersStateIntoPrompt(t *testing.T) {
	t.Parallel()

	var seen string
	e := newTestExtractor(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "{}", nil
	})

	rec := statex.OnboardingRecord{
		StoreID:     "STORE-7",
		B2BProfiles: []string{"Retail Profile", "Finance Profile"},
		Step:        statex.StepFetchStoreInfo,
	}
	if _, err := e.Extract(context.Background(), rec, "here are your options"); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	for _, want := range []string{
		"Store ID: STORE-7",
		"Team Name: None",
		"B2B Profiles: Retail Profile, Finance Profile",
		"Selected Profiles: None",
		"Step: fetch_store_info",
		"Latest AI response: here are your options",
	} {
		if !strings.Contains(seen, want) {
			t.Fatalf("prompt missing %q:\n%s", want, seen)
		}
	}
	if strings.Contains(seen, "{store_id}") {
		t.Fatalf("prompt placeholder left unrendered:\n%s", seen)
	}
}
