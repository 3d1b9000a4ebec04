package tui

import (
	"github.com/coltonswapp/nestnote/internal/model"
	"github.com/coltonswapp/nestnote/internal/pins"
)

// nestLoadedMsg carries the raw results of a full nest reload. The command
// that produces it only fetches; every aggregator mutation happens in Update,
// after the generation check. Each message carries the generation captured
// when its command was dispatched; Update drops messages whose generation no
// longer matches, so a reload finishing after the screen moved on can never
// apply stale data.
type nestLoadedMsg struct {
	gen        int
	categories []model.Category
	items      []model.ItemSummary
	entries    map[string][]model.Entry
	places     []model.Place
	pinned     []string
	err        error // failure of a primary fetch (categories or item mapping)
}

// pinsSavedMsg carries the result of persisting the pin set. It is keyed by
// the editor it belongs to, not the load generation: a reload that races the
// save must not swallow the save's outcome.
type pinsSavedMsg struct {
	editor *pins.Editor
	err    error
}

// clearStatusMsg clears the transient status line.
type clearStatusMsg struct{}
