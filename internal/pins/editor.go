// Package pins edits the bounded set of categories pinned for sitters.
// The editor keeps a working copy and the last-saved original; a save is
// only meaningful while the two differ.
package pins

import (
	"context"

	"github.com/coltonswapp/nestnote/internal/logger"
)

// MaxPinned is the hard cap on pinned categories. Toggling a new pin at the
// cap is a no-op; the oldest pin is never evicted.
const MaxPinned = 4

// Saver persists the pin set.
type Saver interface {
	SavePinnedCategories(ctx context.Context, names []string) error
}

// Editor tracks a working pin set against its last-saved snapshot.
type Editor struct {
	saver    Saver
	log      *logger.Logger
	working  []string // insertion order preserved for display
	original []string
}

// NewEditor creates an Editor seeded with the currently saved pins.
// A nil log defaults to a no-op logger.
func NewEditor(saver Saver, saved []string, log *logger.Logger) *Editor {
	if log == nil {
		log = logger.Nop()
	}
	return &Editor{
		saver:    saver,
		log:      log,
		working:  append([]string{}, saved...),
		original: append([]string{}, saved...),
	}
}

// TogglePin removes name if pinned, or pins it if the working set has room.
// Returns false when the toggle was rejected by the cap.
func (e *Editor) TogglePin(name string) bool {
	for i, n := range e.working {
		if n == name {
			e.working = append(e.working[:i:i], e.working[i+1:]...)
			return true
		}
	}
	if len(e.working) >= MaxPinned {
		e.log.Debug().Str("name", name).Msg("pin rejected, cap reached")
		return false
	}
	e.working = append(e.working, name)
	return true
}

// IsPinned reports whether name is in the working set.
func (e *Editor) IsPinned(name string) bool {
	for _, n := range e.working {
		if n == name {
			return true
		}
	}
	return false
}

// Pinned returns the working pin set in insertion order.
func (e *Editor) Pinned() []string {
	return append([]string{}, e.working...)
}

// Dirty reports whether the working set differs from the last-saved set.
// Order is ignored; pins are a set, the order only matters for display.
func (e *Editor) Dirty() bool {
	if len(e.working) != len(e.original) {
		return true
	}
	saved := make(map[string]bool, len(e.original))
	for _, n := range e.original {
		saved[n] = true
	}
	for _, n := range e.working {
		if !saved[n] {
			return true
		}
	}
	return false
}

// Save persists the working set. On success it becomes the new original
// (state returns to clean); on failure the editor stays dirty so the caller
// can retry without re-entering pins.
func (e *Editor) Save(ctx context.Context) error {
	if err := e.saver.SavePinnedCategories(ctx, e.Pinned()); err != nil {
		e.log.Error().Err(err).Msg("pin save failed")
		return err
	}
	e.original = append([]string{}, e.working...)
	return nil
}
