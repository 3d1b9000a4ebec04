package model

// Nest holds all categories, entries, places and routines of one household,
// plus the categories pinned for sitters.
type Nest struct {
	Categories       []Category `json:"categories"`
	Entries          []Entry    `json:"entries"`
	Places           []Place    `json:"places"`
	Routines         []Routine  `json:"routines"`
	PinnedCategories []string   `json:"pinnedCategories"`
}

// NewNest creates an empty Nest with initialized slices.
func NewNest() *Nest {
	return &Nest{
		Categories:       []Category{},
		Entries:          []Entry{},
		Places:           []Place{},
		Routines:         []Routine{},
		PinnedCategories: []string{},
	}
}

// EntriesInCategory returns entries whose category matches name exactly.
func (n *Nest) EntriesInCategory(name string) []Entry {
	var result []Entry
	for _, e := range n.Entries {
		if e.Category == name {
			result = append(result, e)
		}
	}
	return result
}

// PlacesInCategory returns places whose category matches name exactly.
func (n *Nest) PlacesInCategory(name string) []Place {
	var result []Place
	for _, p := range n.Places {
		if p.Category == name {
			result = append(result, p)
		}
	}
	return result
}

// RoutinesInCategory returns routines whose category matches name exactly.
func (n *Nest) RoutinesInCategory(name string) []Routine {
	var result []Routine
	for _, r := range n.Routines {
		if r.Category == name {
			result = append(result, r)
		}
	}
	return result
}

// CategoryByName finds a category by name, returns nil if not found.
func (n *Nest) CategoryByName(name string) *Category {
	for i := range n.Categories {
		if n.Categories[i].Name == name {
			return &n.Categories[i]
		}
	}
	return nil
}

// EntryByID finds an entry by ID, returns nil if not found.
func (n *Nest) EntryByID(id string) *Entry {
	for i := range n.Entries {
		if n.Entries[i].ID == id {
			return &n.Entries[i]
		}
	}
	return nil
}

// AllItems flattens entries, places and routines into id/category summaries.
func (n *Nest) AllItems() []ItemSummary {
	items := make([]ItemSummary, 0, len(n.Entries)+len(n.Places)+len(n.Routines))
	for _, e := range n.Entries {
		items = append(items, ItemSummary{ID: e.ID, Category: e.Category, Type: ItemTypeEntry})
	}
	for _, p := range n.Places {
		items = append(items, ItemSummary{ID: p.ID, Category: p.Category, Type: ItemTypePlace})
	}
	for _, r := range n.Routines {
		items = append(items, ItemSummary{ID: r.ID, Category: r.Category, Type: ItemTypeRoutine})
	}
	return items
}

// ImportMerge folds another nest into this one. Categories merge by name,
// entries and routines dedupe on category+title, places on category+alias.
// Pins are left untouched. Returns the number of items added and the number
// of duplicates skipped.
func (n *Nest) ImportMerge(other *Nest) (added, skipped int) {
	haveCategory := make(map[string]bool, len(n.Categories))
	for _, c := range n.Categories {
		haveCategory[c.Name] = true
	}
	for _, c := range other.Categories {
		if haveCategory[c.Name] {
			continue
		}
		n.Categories = append(n.Categories, c)
		haveCategory[c.Name] = true
	}

	haveEntry := make(map[string]bool, len(n.Entries))
	for _, e := range n.Entries {
		haveEntry[e.Category+"\x00"+e.Title] = true
	}
	for _, e := range other.Entries {
		key := e.Category + "\x00" + e.Title
		if haveEntry[key] {
			skipped++
			continue
		}
		n.Entries = append(n.Entries, e)
		haveEntry[key] = true
		added++
	}

	havePlace := make(map[string]bool, len(n.Places))
	for _, p := range n.Places {
		havePlace[p.Category+"\x00"+p.Alias] = true
	}
	for _, p := range other.Places {
		key := p.Category + "\x00" + p.Alias
		if havePlace[key] {
			skipped++
			continue
		}
		n.Places = append(n.Places, p)
		havePlace[key] = true
		added++
	}

	haveRoutine := make(map[string]bool, len(n.Routines))
	for _, r := range n.Routines {
		haveRoutine[r.Category+"\x00"+r.Title] = true
	}
	for _, r := range other.Routines {
		key := r.Category + "\x00" + r.Title
		if haveRoutine[key] {
			skipped++
			continue
		}
		n.Routines = append(n.Routines, r)
		haveRoutine[key] = true
		added++
	}

	return added, skipped
}

// ItemCount returns the number of entries plus places filed under the
// category name (exact match, no prefix matching of nested names).
func (n *Nest) ItemCount(name string) int {
	count := 0
	for _, e := range n.Entries {
		if e.Category == name {
			count++
		}
	}
	for _, p := range n.Places {
		if p.Category == name {
			count++
		}
	}
	return count
}
