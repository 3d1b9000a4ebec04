// Package selection tracks which nest items a user has picked for sitter
// visibility and computes per-folder "selected / total" counts for display.
//
// The aggregator keeps three inputs: an item→category mapping, a folder
// totals mapping, and the caller-owned selected-ID set. Every mutation
// replaces its snapshot wholesale and rebuilds the folder list from scratch;
// readers never observe a partially updated state. All mutation happens on
// one goroutine (the bubbletea update loop), so there is no locking here.
package selection

import (
	"context"
	"sort"
	"strings"

	"github.com/coltonswapp/nestnote/internal/logger"
	"github.com/coltonswapp/nestnote/internal/model"
)

// Source is the read contract the aggregator consumes.
type Source interface {
	FetchAllItems(ctx context.Context) ([]model.ItemSummary, error)
	FetchEntries(ctx context.Context) (map[string][]model.Entry, error)
	FetchPlaces(ctx context.Context) ([]model.Place, error)
}

// Folder is one row of the display-ready folder list.
type Folder struct {
	Name       string
	SymbolName string
	Selected   int
	Total      int
}

// Aggregator combines item, category and selection data into folder counts.
type Aggregator struct {
	source Source
	log    *logger.Logger

	itemCategory map[string]string // item ID → category name, replaced wholesale
	folderTotals map[string]int    // top-level category name → entry+place count
	selected     []string          // caller-owned order, set semantics for counting
	categories   []model.Category  // categories from the most recent refresh
	folders      []Folder          // last built display list

	// OnFoldersChanged fires after every completed rebuild with the new list.
	OnFoldersChanged func([]Folder)
	// OnSelectionChanged fires after every completed rebuild with the new count.
	OnSelectionChanged func(int)
}

// New creates an Aggregator over the given source.
// A nil log defaults to a no-op logger.
func New(source Source, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{
		source:       source,
		log:          log,
		itemCategory: map[string]string{},
		folderTotals: map[string]int{},
		selected:     []string{},
	}
}

// SetItemCategoryMapping replaces the item→category mapping wholesale with
// one built from pre-fetched items and rebuilds the folder list. Stale item
// IDs drop out implicitly. This is the apply half of
// RefreshItemCategoryMapping; callers that fetch on another goroutine hand
// the items over and call this from the update loop.
func (a *Aggregator) SetItemCategoryMapping(items []model.ItemSummary) {
	mapping := make(map[string]string, len(items))
	for _, item := range items {
		mapping[item.ID] = item.Category
	}
	a.itemCategory = mapping

	a.rebuild()
}

// RefreshItemCategoryMapping fetches all items and applies them. On fetch
// failure the error is returned and the previous mapping stays intact; on
// success the mapping is replaced atomically and the folder list is rebuilt.
func (a *Aggregator) RefreshItemCategoryMapping(ctx context.Context) error {
	items, err := a.source.FetchAllItems(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("item mapping refresh failed")
		return err
	}
	a.SetItemCategoryMapping(items)
	return nil
}

// SetFolderTotals recounts each top-level category's items from pre-fetched
// entries and places (exact category match, never prefix), replaces the
// totals snapshot and rebuilds. The apply half of RefreshFolderTotals.
func (a *Aggregator) SetFolderTotals(categories []model.Category, entries map[string][]model.Entry, places []model.Place) {
	a.categories = categories

	totals := make(map[string]int, len(categories))
	for _, c := range categories {
		if !model.IsTopLevel(c.Name) {
			continue
		}
		count := len(entries[c.Name])
		for _, p := range places {
			if p.Category == c.Name {
				count++
			}
		}
		totals[c.Name] = count
	}
	a.folderTotals = totals

	a.rebuild()
}

// RefreshFolderTotals fetches entries and places and applies them. A fetch
// failure degrades to an empty totals map so the screen renders 0/0 counts
// instead of blocking; the failure is logged, not propagated.
func (a *Aggregator) RefreshFolderTotals(ctx context.Context, categories []model.Category) {
	entries, entriesErr := a.source.FetchEntries(ctx)
	places, placesErr := a.source.FetchPlaces(ctx)
	if entriesErr != nil || placesErr != nil {
		if entriesErr != nil {
			a.log.Warn().Err(entriesErr).Msg("entry totals fetch failed, degrading to zero counts")
		}
		if placesErr != nil {
			a.log.Warn().Err(placesErr).Msg("place totals fetch failed, degrading to zero counts")
		}
		a.categories = categories
		a.folderTotals = map[string]int{}
		a.rebuild()
		return
	}
	a.SetFolderTotals(categories, entries, places)
}

// SetSelectedIDs replaces the selected-ID set wholesale. Insertion order is
// preserved for display; duplicates are tolerated and counted once.
func (a *Aggregator) SetSelectedIDs(ids []string) {
	a.selected = append([]string{}, ids...)
	a.rebuild()
}

// SelectedIDs returns the current selected-ID set in insertion order.
func (a *Aggregator) SelectedIDs() []string {
	return append([]string{}, a.selected...)
}

// CountSelected returns how many distinct selected IDs map to exactly the
// given folder name. IDs with no mapping entry never match.
func (a *Aggregator) CountSelected(folderName string) int {
	count := 0
	seen := make(map[string]bool, len(a.selected))
	for _, id := range a.selected {
		if seen[id] {
			continue
		}
		seen[id] = true
		if a.itemCategory[id] == folderName {
			count++
		}
	}
	return count
}

// SelectionCount returns the number of distinct selected IDs that resolve
// through the item mapping. Unresolvable IDs contribute nothing.
func (a *Aggregator) SelectionCount() int {
	count := 0
	seen := make(map[string]bool, len(a.selected))
	for _, id := range a.selected {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := a.itemCategory[id]; ok {
			count++
		}
	}
	return count
}

// BuildFolderList produces the sorted, filtered display list for the given
// categories: the reserved "Places" category and nested names are excluded,
// each remaining folder carries (selected, total), and the result is sorted
// case-insensitively ascending by name. Deterministic for fixed inputs.
func (a *Aggregator) BuildFolderList(categories []model.Category) []Folder {
	var folders []Folder
	for _, c := range categories {
		if !model.VisibleFolderName(c.Name) {
			continue
		}
		folders = append(folders, Folder{
			Name:       c.Name,
			SymbolName: c.SymbolName,
			Selected:   a.CountSelected(c.Name),
			Total:      a.folderTotals[c.Name],
		})
	}

	sort.SliceStable(folders, func(i, j int) bool {
		ni, nj := strings.ToLower(folders[i].Name), strings.ToLower(folders[j].Name)
		if ni != nj {
			return ni < nj
		}
		return folders[i].Name < folders[j].Name
	})

	return folders
}

// Folders returns the most recently built display list.
func (a *Aggregator) Folders() []Folder {
	return a.folders
}

// rebuild recomputes the display list from the current snapshots and fires
// the change hooks.
func (a *Aggregator) rebuild() {
	a.folders = a.BuildFolderList(a.categories)
	if a.OnFoldersChanged != nil {
		a.OnFoldersChanged(a.folders)
	}
	if a.OnSelectionChanged != nil {
		a.OnSelectionChanged(a.SelectionCount())
	}
}
