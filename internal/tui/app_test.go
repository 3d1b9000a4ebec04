package tui_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coltonswapp/nestnote/internal/model"
	"github.com/coltonswapp/nestnote/internal/tui"
)

// fakeSource implements tui.NestSource with canned data.
type fakeSource struct {
	categories []model.Category
	items      []model.ItemSummary
	entries    map[string][]model.Entry
	places     []model.Place
	pinned     []string

	fetchErr error
	saveErr  error
	saved    []string
}

func (f *fakeSource) FetchAllItems(ctx context.Context) ([]model.ItemSummary, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.items, nil
}

func (f *fakeSource) FetchCategories(ctx context.Context) ([]model.Category, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.categories, nil
}

func (f *fakeSource) FetchEntries(ctx context.Context) (map[string][]model.Entry, error) {
	return f.entries, nil
}

func (f *fakeSource) FetchPlaces(ctx context.Context) ([]model.Place, error) {
	return f.places, nil
}

func (f *fakeSource) FetchPinnedCategories(ctx context.Context) ([]string, error) {
	return f.pinned, nil
}

func (f *fakeSource) SavePinnedCategories(ctx context.Context, names []string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append([]string{}, names...)
	return nil
}

func sampleSource() *fakeSource {
	return &fakeSource{
		categories: []model.Category{
			{ID: "c1", Name: "Household", SymbolName: "house"},
			{ID: "c2", Name: "Pets", SymbolName: "pawprint"},
			{ID: "c3", Name: "Places", SymbolName: "mappin"},
			{ID: "c4", Name: "Household/Garage", SymbolName: "car"},
		},
		items: []model.ItemSummary{
			{ID: "e1", Category: "Household", Type: model.ItemTypeEntry},
			{ID: "e2", Category: "Pets", Type: model.ItemTypeEntry},
		},
		entries: map[string][]model.Entry{
			"Household": {{ID: "e1", Title: "Gate code", Content: "4821", Category: "Household"}},
			"Pets":      {{ID: "e2", Title: "Feeding", Content: "Twice a day", Category: "Pets"}},
		},
		places: []model.Place{
			{ID: "p1", Alias: "Vet", Address: "1 Main St", Category: "Pets"},
		},
	}
}

// loadedApp builds an app and runs its initial load synchronously.
func loadedApp(t *testing.T, src *fakeSource) tui.App {
	t.Helper()
	app := tui.NewApp(tui.AppParams{Source: src})

	cmd := app.Init()
	if cmd == nil {
		t.Fatal("expected Init to return a load command")
	}
	updated, _ := app.Update(cmd())
	app = updated.(tui.App)

	if app.Loading() {
		t.Fatal("app still loading after applying load result")
	}
	return app
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestApp_LoadBuildsFolderList(t *testing.T) {
	app := loadedApp(t, sampleSource())

	folders := app.Folders()
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders (Places and nested excluded), got %d", len(folders))
	}
	if folders[0].Name != "Household" || folders[1].Name != "Pets" {
		t.Errorf("unexpected folder order: %s, %s", folders[0].Name, folders[1].Name)
	}
	if folders[0].Total != 1 {
		t.Errorf("Household total = %d, want 1", folders[0].Total)
	}
	if folders[1].Total != 2 {
		t.Errorf("Pets total = %d, want 2 (entry + place)", folders[1].Total)
	}
}

func TestApp_Navigation_JK(t *testing.T) {
	app := loadedApp(t, sampleSource())

	if app.Cursor() != 0 {
		t.Errorf("expected initial cursor 0, got %d", app.Cursor())
	}

	updated, _ := app.Update(keyRunes('j'))
	app = updated.(tui.App)
	if app.Cursor() != 1 {
		t.Errorf("after j, expected cursor 1, got %d", app.Cursor())
	}

	// j at bottom stays
	updated, _ = app.Update(keyRunes('j'))
	app = updated.(tui.App)
	if app.Cursor() != 1 {
		t.Errorf("j at bottom should stay at 1, got %d", app.Cursor())
	}

	updated, _ = app.Update(keyRunes('k'))
	app = updated.(tui.App)
	if app.Cursor() != 0 {
		t.Errorf("after k, expected cursor 0, got %d", app.Cursor())
	}

	// k at top stays
	updated, _ = app.Update(keyRunes('k'))
	app = updated.(tui.App)
	if app.Cursor() != 0 {
		t.Errorf("k at top should stay at 0, got %d", app.Cursor())
	}
}

func TestApp_EnterAndLeaveFolder(t *testing.T) {
	app := loadedApp(t, sampleSource())

	// Enter Household
	updated, _ := app.Update(keyRunes('l'))
	app = updated.(tui.App)

	if app.CurrentFolder() != "Household" {
		t.Fatalf("expected to be in Household, got %q", app.CurrentFolder())
	}
	if len(app.Items()) != 1 {
		t.Fatalf("expected 1 item in Household, got %d", len(app.Items()))
	}

	// Back out
	updated, _ = app.Update(keyRunes('h'))
	app = updated.(tui.App)
	if app.CurrentFolder() != "" {
		t.Errorf("expected to be back at folder list, got %q", app.CurrentFolder())
	}
}

func TestApp_ToggleSelectionUpdatesBadges(t *testing.T) {
	app := loadedApp(t, sampleSource())

	// Enter Household and toggle the gate code entry
	updated, _ := app.Update(keyRunes('l'))
	app = updated.(tui.App)
	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = updated.(tui.App)

	if got := app.SelectionCount(); got != 1 {
		t.Fatalf("expected selection count 1, got %d", got)
	}

	// Back on the folder list the badge must show 1/1
	updated, _ = app.Update(keyRunes('h'))
	app = updated.(tui.App)

	folders := app.Folders()
	if folders[0].Selected != 1 {
		t.Errorf("Household selected = %d, want 1", folders[0].Selected)
	}

	// Toggle again clears it
	updated, _ = app.Update(keyRunes('l'))
	app = updated.(tui.App)
	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = updated.(tui.App)
	if got := app.SelectionCount(); got != 0 {
		t.Errorf("expected selection count 0 after re-toggle, got %d", got)
	}
}

func TestApp_InitialSelectionApplied(t *testing.T) {
	app := tui.NewApp(tui.AppParams{
		Source:     sampleSource(),
		InitialSel: []string{"e2"},
	})

	updated, _ := app.Update(app.Init()())
	app = updated.(tui.App)

	folders := app.Folders()
	if folders[1].Name != "Pets" || folders[1].Selected != 1 {
		t.Errorf("expected initial selection to count for Pets, got %+v", folders)
	}
}

func TestApp_StaleLoadDiscarded(t *testing.T) {
	src := sampleSource()
	app := tui.NewApp(tui.AppParams{Source: src})

	// Capture the initial load but do not apply it yet.
	staleCmd := app.Init()
	staleMsg := staleCmd()

	// A reload supersedes the outstanding load.
	updated, freshCmd := app.Update(keyRunes('r'))
	app = updated.(tui.App)
	if !app.Loading() {
		t.Fatal("expected loading state after reload")
	}

	// The stale result must be discarded.
	updated, _ = app.Update(staleMsg)
	app = updated.(tui.App)
	if !app.Loading() {
		t.Fatal("stale load result should have been discarded")
	}
	if len(app.Folders()) != 0 {
		t.Fatalf("stale folders applied: %+v", app.Folders())
	}

	// The fresh result applies.
	updated, _ = app.Update(freshCmd())
	app = updated.(tui.App)
	if app.Loading() {
		t.Fatal("fresh load result should have been applied")
	}
	if len(app.Folders()) != 2 {
		t.Errorf("expected 2 folders after fresh load, got %d", len(app.Folders()))
	}
}

func TestApp_ClearDuringReloadKeepsSelectionCleared(t *testing.T) {
	app := loadedApp(t, sampleSource())

	// Select the Household entry
	updated, _ := app.Update(keyRunes('l'))
	app = updated.(tui.App)
	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = updated.(tui.App)
	updated, _ = app.Update(keyRunes('h'))
	app = updated.(tui.App)
	if app.SelectionCount() != 1 {
		t.Fatal("expected 1 selected before reload")
	}

	// Reload, then clear the selection while the load is in flight.
	updated, reloadCmd := app.Update(keyRunes('r'))
	app = updated.(tui.App)
	updated, _ = app.Update(keyRunes('c'))
	app = updated.(tui.App)

	// The reload result must not resurrect the cleared selection.
	updated, _ = app.Update(reloadCmd())
	app = updated.(tui.App)

	if got := app.SelectionCount(); got != 0 {
		t.Errorf("selection count = %d, want 0 after clear", got)
	}
	if got := app.SelectedIDs(); len(got) != 0 {
		t.Errorf("selected ids = %v, want empty", got)
	}
	if folders := app.Folders(); folders[0].Selected != 0 {
		t.Errorf("Household selected = %d, want 0", folders[0].Selected)
	}
}

func TestApp_OverlappingReloadsApplyOnlyTheLatest(t *testing.T) {
	src := sampleSource()
	app := loadedApp(t, src)

	// Two reloads back to back; only the second generation is current.
	updated, firstCmd := app.Update(keyRunes('r'))
	app = updated.(tui.App)
	updated, secondCmd := app.Update(keyRunes('r'))
	app = updated.(tui.App)

	// Both commands run; the data changes between them.
	firstMsg := firstCmd()
	src.categories = append(src.categories, model.Category{ID: "c5", Name: "Garden", SymbolName: "leaf"})
	secondMsg := secondCmd()

	updated, _ = app.Update(firstMsg)
	app = updated.(tui.App)
	if !app.Loading() {
		t.Fatal("superseded reload result should be discarded")
	}

	updated, _ = app.Update(secondMsg)
	app = updated.(tui.App)
	if app.Loading() {
		t.Fatal("latest reload result should apply")
	}
	if len(app.Folders()) != 3 {
		t.Errorf("expected 3 folders from the latest reload, got %d", len(app.Folders()))
	}
}

func TestApp_PrimaryFetchFailureBlocks(t *testing.T) {
	src := sampleSource()
	src.fetchErr = errors.New("backend down")

	app := tui.NewApp(tui.AppParams{Source: src})
	updated, _ := app.Update(app.Init()())
	app = updated.(tui.App)

	if app.Err() == "" {
		t.Fatal("expected a blocking error")
	}
	view := app.View()
	if !strings.Contains(view, "Could not load your nest") {
		t.Error("expected blocking error screen")
	}

	// Retry after the backend recovers.
	src.fetchErr = nil
	updated, cmd := app.Update(keyRunes('r'))
	app = updated.(tui.App)
	updated, _ = app.Update(cmd())
	app = updated.(tui.App)

	if app.Err() != "" {
		t.Errorf("expected error cleared after retry, got %q", app.Err())
	}
	if len(app.Folders()) != 2 {
		t.Errorf("expected folders after retry, got %d", len(app.Folders()))
	}
}

func TestApp_PinEditorFlow(t *testing.T) {
	src := sampleSource()
	src.pinned = []string{"Household"}

	app := loadedApp(t, src)

	// Open the pin editor
	updated, _ := app.Update(keyRunes('p'))
	app = updated.(tui.App)

	editor := app.PinEditor()
	if editor == nil {
		t.Fatal("expected pin editor after load")
	}
	if !editor.IsPinned("Household") {
		t.Error("saved pin should be seeded")
	}
	if editor.Dirty() {
		t.Error("freshly seeded editor should be clean")
	}

	// Toggle Pets (row 1: Household, Pets, Places)
	updated, _ = app.Update(keyRunes('j'))
	app = updated.(tui.App)
	updated, _ = app.Update(keyRunes('*'))
	app = updated.(tui.App)

	if !app.PinEditor().IsPinned("Pets") {
		t.Fatal("expected Pets pinned")
	}
	if !app.PinEditor().Dirty() {
		t.Fatal("expected dirty editor")
	}

	// Save
	updated, cmd := app.Update(keyRunes('s'))
	app = updated.(tui.App)
	if cmd == nil {
		t.Fatal("expected save command for dirty editor")
	}
	updated, _ = app.Update(cmd())
	app = updated.(tui.App)

	if app.PinEditor().Dirty() {
		t.Error("expected clean editor after save")
	}
	want := []string{"Household", "Pets"}
	if len(src.saved) != 2 || src.saved[0] != want[0] || src.saved[1] != want[1] {
		t.Errorf("persisted pins = %v, want %v", src.saved, want)
	}
}

func TestApp_PinSaveFailureStaysDirty(t *testing.T) {
	src := sampleSource()
	src.saveErr = errors.New("readonly fs")

	app := loadedApp(t, src)

	updated, _ := app.Update(keyRunes('p'))
	app = updated.(tui.App)
	updated, _ = app.Update(keyRunes('*'))
	app = updated.(tui.App)

	updated, cmd := app.Update(keyRunes('s'))
	app = updated.(tui.App)
	updated, _ = app.Update(cmd())
	app = updated.(tui.App)

	if !app.PinEditor().Dirty() {
		t.Error("failed save must leave the editor dirty for retry")
	}
	if !strings.Contains(app.View(), "readonly fs") {
		t.Error("expected inline save error in view")
	}
}

func TestApp_PinSaveErrorSurvivesReload(t *testing.T) {
	src := sampleSource()
	src.saveErr = errors.New("readonly fs")

	app := loadedApp(t, src)

	updated, _ := app.Update(keyRunes('p'))
	app = updated.(tui.App)
	updated, _ = app.Update(keyRunes('*'))
	app = updated.(tui.App)
	updated, saveCmd := app.Update(keyRunes('s'))
	app = updated.(tui.App)

	// A reload finishes before the save result arrives. The editor is dirty,
	// so it survives the reload.
	updated, reloadCmd := app.Update(keyRunes('r'))
	app = updated.(tui.App)
	updated, _ = app.Update(reloadCmd())
	app = updated.(tui.App)

	// The late save failure must still surface inline.
	updated, _ = app.Update(saveCmd())
	app = updated.(tui.App)

	if !app.PinEditor().Dirty() {
		t.Fatal("failed save must leave the editor dirty")
	}
	if !strings.Contains(app.View(), "readonly fs") {
		t.Error("save error that raced a reload must still show inline")
	}
}

func TestApp_PlacesRowPinnable(t *testing.T) {
	app := loadedApp(t, sampleSource())

	updated, _ := app.Update(keyRunes('p'))
	app = updated.(tui.App)

	// Rows: Household, Pets, Places — jump to bottom and pin
	updated, _ = app.Update(keyRunes('G'))
	app = updated.(tui.App)
	updated, _ = app.Update(keyRunes('*'))
	app = updated.(tui.App)

	if !app.PinEditor().IsPinned("Places") {
		t.Error("the synthetic Places row should be pinnable")
	}
}

func TestApp_ViewShowsCounts(t *testing.T) {
	app := loadedApp(t, sampleSource())

	view := app.View()
	if !strings.Contains(view, "Household") {
		t.Error("expected Household folder in view")
	}
	if !strings.Contains(view, "0/1") {
		t.Error("expected 0/1 badge for Household")
	}
	if !strings.Contains(view, "0/2") {
		t.Error("expected 0/2 badge for Pets")
	}
	if strings.Contains(view, "Household/Garage") {
		t.Error("nested category must not appear in the folder list")
	}
}
