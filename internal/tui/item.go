package tui

import "github.com/coltonswapp/nestnote/internal/model"

// ItemKind distinguishes between entries and places in a folder listing.
type ItemKind int

const (
	ItemEntry ItemKind = iota
	ItemPlace
)

// Item represents either an entry or a place in a folder listing.
type Item struct {
	Kind  ItemKind
	Entry *model.Entry
	Place *model.Place
}

// ID returns the item's ID regardless of type.
func (i Item) ID() string {
	if i.Kind == ItemEntry {
		return i.Entry.ID
	}
	return i.Place.ID
}

// Title returns a display title for the item.
func (i Item) Title() string {
	if i.Kind == ItemEntry {
		return i.Entry.Title
	}
	return i.Place.Alias
}

// Detail returns secondary display text for the item.
func (i Item) Detail() string {
	if i.Kind == ItemEntry {
		return i.Entry.Content
	}
	return i.Place.Address
}
