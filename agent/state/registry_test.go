package state

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegistryLoadUnknownSession(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.Load(context.Background(), "missing")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestRegistryRejectsEmptySessionID(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	if _, err := r.Load(context.Background(), "  "); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession on load, got %v", err)
	}
	if err := r.Save(context.Background(), NewSession("", time.Now())); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession on save, got %v", err)
	}
	if err := r.Save(context.Background(), nil); !errors.Is(err, ErrNilSession) {
		t.Fatalf("expected ErrNilSession, got %v", err)
	}
	if err := r.Delete(context.Background(), ""); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession on delete, got %v", err)
	}
}

func TestRegistrySaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ctx := context.Background()

	s := NewSession("s1", time.Now())
	s.Record.StoreID = "STORE-1"
	s.AppendUser("hello")
	s.AppendAssistant("hi there")

	if err := r.Save(ctx, s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := r.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Record.StoreID != "STORE-1" {
		t.Fatalf("expected store id round-tripped, got %q", got.Record.StoreID)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got.Messages))
	}
	if got.LatestAssistantText() != "hi there" {
		t.Fatalf("unexpected latest assistant text: %q", got.LatestAssistantText())
	}
}

func TestRegistryIsolatesCallersFromStoredState(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ctx := context.Background()

	s := NewSession("s1", time.Now())
	s.Record.B2BProfiles = []string{"A"}
	if err := r.Save(ctx, s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Mutating the saved-in session must not leak into the registry.
	s.Record.B2BProfiles[0] = "mutated"
	s.AppendUser("after save")

	got, err := r.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Record.B2BProfiles[0] != "A" {
		t.Fatalf("registry state aliased by caller mutation: %v", got.Record.B2BProfiles)
	}
	if len(got.Messages) != 0 {
		t.Fatalf("expected no messages in stored copy, got %d", len(got.Messages))
	}

	// Mutating a loaded session must not leak either.
	got.Record.B2BProfiles[0] = "loaded-mutation"
	again, err := r.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if again.Record.B2BProfiles[0] != "A" {
		t.Fatalf("registry state aliased by loaded copy: %v", again.Record.B2BProfiles)
	}
}

func TestRegistryDeleteResetsSession(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ctx := context.Background()

	if err := r.Save(ctx, NewSession("s1", time.Now())); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := r.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := r.Load(ctx, "s1"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound after delete, got %v", err)
	}

	// Deleting a session that never existed is not an error.
	if err := r.Delete(ctx, "never-seen"); err != nil {
		t.Fatalf("delete of unknown session failed: %v", err)
	}
}
