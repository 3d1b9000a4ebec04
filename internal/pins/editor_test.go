package pins_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/coltonswapp/nestnote/internal/pins"
)

// fakeSaver records saves and can be told to fail.
type fakeSaver struct {
	saved []string
	calls int
	err   error
}

func (f *fakeSaver) SavePinnedCategories(ctx context.Context, names []string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.saved = append([]string{}, names...)
	return nil
}

func TestEditor_TogglePin_AddAndRemove(t *testing.T) {
	e := pins.NewEditor(&fakeSaver{}, nil, nil)

	if !e.TogglePin("Household") {
		t.Fatal("expected first pin to succeed")
	}
	if !e.IsPinned("Household") {
		t.Error("Household should be pinned")
	}
	if !e.Dirty() {
		t.Error("editor should be dirty after a pin")
	}

	if !e.TogglePin("Household") {
		t.Fatal("expected unpin to succeed")
	}
	if e.IsPinned("Household") {
		t.Error("Household should be unpinned")
	}
	if e.Dirty() {
		t.Error("toggle twice should return to clean")
	}
}

func TestEditor_CapIsHard(t *testing.T) {
	e := pins.NewEditor(&fakeSaver{}, nil, nil)

	names := []string{"Household", "Pets", "Places", "School"}
	for _, n := range names {
		if !e.TogglePin(n) {
			t.Fatalf("pin %q should have succeeded", n)
		}
	}

	if e.TogglePin("Garden") {
		t.Error("5th pin should be rejected")
	}

	got := e.Pinned()
	if !reflect.DeepEqual(got, names) {
		t.Errorf("working set changed by rejected pin: got %v, want %v", got, names)
	}

	// Removing an existing pin still works at cap.
	if !e.TogglePin("Pets") {
		t.Error("unpin at cap should succeed")
	}
	if len(e.Pinned()) != 3 {
		t.Errorf("expected 3 pins after unpin, got %d", len(e.Pinned()))
	}
}

func TestEditor_DirtyIgnoresOrder(t *testing.T) {
	e := pins.NewEditor(&fakeSaver{}, []string{"Household", "Pets"}, nil)

	// Remove and re-add: same members, different order — still clean.
	e.TogglePin("Household")
	e.TogglePin("Household")
	if e.Dirty() {
		t.Errorf("same members in different order should be clean, working %v", e.Pinned())
	}
}

func TestEditor_ScenarioTogglePlaces(t *testing.T) {
	e := pins.NewEditor(&fakeSaver{}, []string{"Household", "Pets"}, nil)

	if e.Dirty() {
		t.Fatal("freshly seeded editor should be clean")
	}

	if !e.TogglePin("Places") {
		t.Fatal("expected Places pin to succeed")
	}

	want := []string{"Household", "Pets", "Places"}
	if !reflect.DeepEqual(e.Pinned(), want) {
		t.Errorf("working set = %v, want %v", e.Pinned(), want)
	}
	if !e.Dirty() {
		t.Error("editor should be dirty, enabling save")
	}
}

func TestEditor_SaveCommitsSnapshot(t *testing.T) {
	saver := &fakeSaver{}
	e := pins.NewEditor(saver, []string{"Household"}, nil)

	e.TogglePin("Pets")
	if err := e.Save(context.Background()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if e.Dirty() {
		t.Error("editor should be clean after a successful save")
	}
	want := []string{"Household", "Pets"}
	if !reflect.DeepEqual(saver.saved, want) {
		t.Errorf("persisted %v, want %v", saver.saved, want)
	}

	// A further toggle dirties against the new snapshot.
	e.TogglePin("Pets")
	if !e.Dirty() {
		t.Error("editor should be dirty against the new original")
	}
}

func TestEditor_SaveFailureStaysDirty(t *testing.T) {
	saver := &fakeSaver{err: errors.New("backend down")}
	e := pins.NewEditor(saver, nil, nil)

	e.TogglePin("Household")
	if err := e.Save(context.Background()); err == nil {
		t.Fatal("expected save to fail")
	}

	if !e.Dirty() {
		t.Error("failed save must leave the editor dirty for retry")
	}

	// Retry after clearing the failure.
	saver.err = nil
	if err := e.Save(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if e.Dirty() {
		t.Error("editor should be clean after successful retry")
	}
	if saver.calls != 2 {
		t.Errorf("expected 2 save calls, got %d", saver.calls)
	}
}
