package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coltonswapp/nestnote/internal/logger"
	"github.com/coltonswapp/nestnote/internal/model"
	"github.com/coltonswapp/nestnote/internal/pins"
	"github.com/coltonswapp/nestnote/internal/selection"
)

// NestSource is the read/write contract the app consumes.
// service.NestService satisfies it.
type NestSource interface {
	selection.Source
	FetchCategories(ctx context.Context) ([]model.Category, error)
	FetchPinnedCategories(ctx context.Context) ([]string, error)
	SavePinnedCategories(ctx context.Context, names []string) error
}

// viewMode is the screen the app is currently showing.
type viewMode int

const (
	modeFolders viewMode = iota // top-level folder list with selected/total badges
	modeFolder                  // items of one folder, space toggles sitter visibility
	modePins                    // pin editor overlay
	modeHelp                    // help overlay
)

// App is the main bubbletea model for the nest manager.
type App struct {
	source NestSource
	agg    *selection.Aggregator
	editor *pins.Editor
	keys   KeyMap
	styles Styles
	log    *logger.Logger

	mode    viewMode
	loading bool
	errMsg  string // blocking error from the primary mapping refresh
	status  string // transient line, e.g. "pins saved"
	pinErr  string // inline pin save error, retry stays possible

	// Loaded nest data
	categories []model.Category
	folders    []selection.Folder
	entries    map[string][]model.Entry
	places     []model.Place

	// Navigation state
	cursor        int
	currentFolder string // "" = folder list
	items         []Item // items of the current folder
	pinCursor     int

	// Sitter visibility selection, insertion order preserved
	selectedIDs []string

	// gen guards against stale async results: a reload finishing after a
	// newer one was dispatched is discarded.
	gen int

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Source      NestSource
	InitialSel  []string // externally supplied initial selection, optional
	Keys        *KeyMap  // optional, uses default if nil
	Styles      *Styles  // optional, uses default if nil
	Log         *logger.Logger
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	log := params.Log
	if log == nil {
		log = logger.Nop()
	}

	agg := selection.New(params.Source, log)

	app := App{
		source:      params.Source,
		agg:         agg,
		keys:        keys,
		styles:      styles,
		log:         log,
		mode:        modeFolders,
		loading:     true,
		entries:     map[string][]model.Entry{},
		selectedIDs: append([]string{}, params.InitialSel...),
		width:       80,
		height:      24,
	}

	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.cmdLoadNest()
}

// cmdLoadNest fetches everything the screens need. It is fetch-only: the
// closure never touches the aggregator or any other shared state, so
// overlapping reloads cannot race. The raw results are applied in Update,
// on the update loop, and only if the generation still matches.
func (a App) cmdLoadNest() tea.Cmd {
	gen := a.gen
	src := a.source
	log := a.log

	return func() tea.Msg {
		ctx := context.Background()

		categories, err := src.FetchCategories(ctx)
		if err != nil {
			return nestLoadedMsg{gen: gen, err: err}
		}

		// Item mapping is the primary fetch: failure blocks the screen.
		items, err := src.FetchAllItems(ctx)
		if err != nil {
			return nestLoadedMsg{gen: gen, err: err}
		}

		// Folder contents double as the totals input. A failure here
		// degrades to zero counts and empty listings rather than blocking.
		entries, err := src.FetchEntries(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("entry fetch failed, degrading to zero counts")
			entries = map[string][]model.Entry{}
		}
		places, err := src.FetchPlaces(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("place fetch failed, degrading to zero counts")
			places = nil
		}

		// Pins are an optional capability: absence reads as empty.
		pinned, err := src.FetchPinnedCategories(ctx)
		if err != nil {
			pinned = nil
		}

		return nestLoadedMsg{
			gen:        gen,
			categories: categories,
			items:      items,
			entries:    entries,
			places:     places,
			pinned:     pinned,
		}
	}
}

// cmdSavePins persists the pin editor's working set. The result is keyed by
// the editor so a reload racing the save cannot swallow its outcome.
func (a App) cmdSavePins() tea.Cmd {
	editor := a.editor

	return func() tea.Msg {
		err := editor.Save(context.Background())
		return pinsSavedMsg{editor: editor, err: err}
	}
}

// cmdClearStatusAfter clears the status line after a delay.
func cmdClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case nestLoadedMsg:
		if msg.gen != a.gen {
			// Stale result from a superseded reload
			a.log.Debug().Int("msgGen", msg.gen).Int("gen", a.gen).Msg("stale nest load discarded")
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.categories = msg.categories
		a.entries = msg.entries
		a.places = msg.places

		// All aggregator mutation happens here, on the update loop. The
		// selection pushed in is the current one, not the one captured when
		// the reload was dispatched, so a clear during a reload sticks.
		a.agg.SetItemCategoryMapping(msg.items)
		a.agg.SetFolderTotals(msg.categories, msg.entries, msg.places)
		a.agg.SetSelectedIDs(a.selectedIDs)
		a.folders = a.agg.Folders()

		if a.editor == nil || !a.editor.Dirty() {
			a.editor = pins.NewEditor(a.source, msg.pinned, a.log)
		}
		a.refreshItems()
		a.clampCursor()
		return a, nil

	case pinsSavedMsg:
		if msg.editor != a.editor {
			// Outcome of an editor that has since been replaced
			return a, nil
		}
		if msg.err != nil {
			a.pinErr = msg.err.Error()
			return a, nil
		}
		a.pinErr = ""
		a.status = "pins saved"
		return a, cmdClearStatusAfter(2 * time.Second)

	case clearStatusMsg:
		a.status = ""
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey routes a key press based on the current mode.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.setCursor(0)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		if a.mode == modeHelp {
			a.mode = modeFolders
		} else if a.mode == modeFolders {
			a.mode = modeHelp
		}
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		// New generation: any in-flight load becomes stale.
		a.gen++
		a.loading = true
		return a, a.cmdLoadNest()
	}

	switch a.mode {
	case modeFolders:
		return a.handleFoldersKey(msg)
	case modeFolder:
		return a.handleFolderKey(msg)
	case modePins:
		return a.handlePinsKey(msg)
	case modeHelp:
		if key.Matches(msg, a.keys.Back) {
			a.mode = modeFolders
		}
		return a, nil
	}

	return a, nil
}

// handleFoldersKey handles keys on the top-level folder list.
func (a App) handleFoldersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if len(a.folders) > 0 && a.cursor < len(a.folders)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.folders) > 0 {
			a.cursor = len(a.folders) - 1
		}

	case key.Matches(msg, a.keys.Right):
		if len(a.folders) > 0 && a.cursor < len(a.folders) {
			a.currentFolder = a.folders[a.cursor].Name
			a.mode = modeFolder
			a.cursor = 0
			a.refreshItems()
		}

	case key.Matches(msg, a.keys.Pins):
		if a.editor != nil {
			a.mode = modePins
			a.pinCursor = 0
			a.pinErr = ""
		}

	case key.Matches(msg, a.keys.ClearSelection):
		a.selectedIDs = nil
		a.agg.SetSelectedIDs(nil)
		a.folders = a.agg.Folders()
		a.clampCursor()
	}

	return a, nil
}

// handleFolderKey handles keys inside a folder listing.
func (a App) handleFolderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if len(a.items) > 0 && a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}

	case key.Matches(msg, a.keys.ToggleSelect):
		if len(a.items) > 0 && a.cursor < len(a.items) {
			a.toggleSelected(a.items[a.cursor].ID())
		}

	case key.Matches(msg, a.keys.Left), key.Matches(msg, a.keys.Back):
		a.mode = modeFolders
		a.currentFolder = ""
		a.cursor = 0
		a.clampCursor()
	}

	return a, nil
}

// handlePinsKey handles keys in the pin editor overlay.
func (a App) handlePinsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.pinRows()

	switch {
	case key.Matches(msg, a.keys.Down):
		if len(rows) > 0 && a.pinCursor < len(rows)-1 {
			a.pinCursor++
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(rows) > 0 {
			a.pinCursor = len(rows) - 1
		}

	case key.Matches(msg, a.keys.Up):
		if a.pinCursor > 0 {
			a.pinCursor--
		}

	case key.Matches(msg, a.keys.TogglePin):
		if len(rows) > 0 && a.pinCursor < len(rows) {
			if !a.editor.TogglePin(rows[a.pinCursor]) {
				a.pinErr = "pin limit reached (4)"
			} else {
				a.pinErr = ""
			}
		}

	case key.Matches(msg, a.keys.Save):
		if a.editor.Dirty() {
			return a, a.cmdSavePins()
		}

	case key.Matches(msg, a.keys.Left), key.Matches(msg, a.keys.Back):
		a.mode = modeFolders
		a.pinErr = ""
	}

	return a, nil
}

// pinRows returns the pinnable category names: every visible folder plus the
// synthetic Places row.
func (a App) pinRows() []string {
	rows := make([]string, 0, len(a.folders)+1)
	for _, f := range a.folders {
		rows = append(rows, f.Name)
	}
	rows = append(rows, model.ReservedPlacesCategory)
	return rows
}

// toggleSelected flips one item in the sitter visibility selection and pushes
// the whole set into the aggregator.
func (a *App) toggleSelected(id string) {
	found := false
	next := make([]string, 0, len(a.selectedIDs)+1)
	for _, sid := range a.selectedIDs {
		if sid == id {
			found = true
			continue
		}
		next = append(next, sid)
	}
	if !found {
		next = append(next, id)
	}
	a.selectedIDs = next

	a.agg.SetSelectedIDs(a.selectedIDs)
	a.folders = a.agg.Folders()
}

// refreshItems rebuilds the items slice for the current folder.
func (a *App) refreshItems() {
	a.items = []Item{}
	if a.currentFolder == "" {
		return
	}

	entries := a.entries[a.currentFolder]
	for i := range entries {
		a.items = append(a.items, Item{Kind: ItemEntry, Entry: &entries[i]})
	}
	for i := range a.places {
		if a.places[i].Category == a.currentFolder {
			a.items = append(a.items, Item{Kind: ItemPlace, Place: &a.places[i]})
		}
	}
}

// setCursor moves the cursor of whichever list is active.
func (a *App) setCursor(pos int) {
	if a.mode == modePins {
		a.pinCursor = pos
		return
	}
	a.cursor = pos
}

// clampCursor keeps the cursor inside the active list after data changes.
func (a *App) clampCursor() {
	max := len(a.folders)
	if a.mode == modeFolder {
		max = len(a.items)
	}
	if max == 0 {
		a.cursor = 0
		return
	}
	if a.cursor >= max {
		a.cursor = max - 1
	}
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Folders returns the current folder list.
func (a App) Folders() []selection.Folder {
	return a.folders
}

// CurrentFolder returns the name of the open folder ("" on the folder list).
func (a App) CurrentFolder() string {
	return a.currentFolder
}

// Items returns the items of the currently open folder.
func (a App) Items() []Item {
	return a.items
}

// SelectedIDs returns the sitter visibility selection in insertion order.
func (a App) SelectedIDs() []string {
	return append([]string{}, a.selectedIDs...)
}

// SelectionCount returns the number of resolvable selected items.
func (a App) SelectionCount() int {
	return a.agg.SelectionCount()
}

// PinEditor returns the pin editor (nil until the first load completes).
func (a App) PinEditor() *pins.Editor {
	return a.editor
}

// Err returns the blocking error message, if any.
func (a App) Err() string {
	return a.errMsg
}

// Loading reports whether the initial or a manual reload is in flight.
func (a App) Loading() bool {
	return a.loading
}

// WithDimensions returns a copy of the app with fixed dimensions (tests).
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
