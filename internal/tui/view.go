package tui

import (
	"fmt"
	"strings"

	"github.com/coltonswapp/nestnote/internal/pins"
)

// renderView dispatches to the renderer for the current mode.
func (a App) renderView() string {
	var body string
	switch {
	case a.errMsg != "":
		body = a.renderError()
	case a.loading:
		body = a.styles.Empty.Render("Loading nest...")
	case a.mode == modePins:
		body = a.renderPins()
	case a.mode == modeHelp:
		body = a.renderHelp()
	case a.mode == modeFolder:
		body = a.renderFolder()
	default:
		body = a.renderFolders()
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("nestnote"))
	b.WriteString("\n\n")
	b.WriteString(body)

	if a.status != "" {
		b.WriteString("\n\n")
		b.WriteString(a.styles.Status.Render(a.status))
	}

	return a.styles.App.Render(b.String())
}

// renderError shows the blocking error screen for primary fetch failures.
func (a App) renderError() string {
	var b strings.Builder
	b.WriteString(a.styles.Error.Render("Could not load your nest"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Status.Render(a.errMsg))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("r: retry  q: quit"))
	return b.String()
}

// renderFolders shows the top-level folder list with selection badges.
func (a App) renderFolders() string {
	var b strings.Builder

	if len(a.folders) == 0 {
		b.WriteString(a.styles.Empty.Render("No categories yet."))
		b.WriteString("\n\n")
		b.WriteString(a.renderHints("j/k: move  p: pins  ?: help  q: quit"))
		return b.String()
	}

	count := a.SelectionCount()
	header := fmt.Sprintf("%d items visible to sitter", count)
	b.WriteString(a.styles.Breadcrumb.Render(header))
	b.WriteString("\n\n")

	for i, f := range a.folders {
		style := a.styles.Item
		if i == a.cursor {
			style = a.styles.ItemSelected
		}

		badgeStyle := a.styles.Count
		if f.Selected > 0 {
			badgeStyle = a.styles.CountActive
		}
		badge := badgeStyle.Render(fmt.Sprintf("%d/%d", f.Selected, f.Total))

		pin := "  "
		if a.editor != nil && a.editor.IsPinned(f.Name) {
			pin = a.styles.Pin.Render("* ")
		}

		b.WriteString(fmt.Sprintf("%s%s  %s\n", pin, style.Render(f.Name), badge))
	}

	b.WriteString("\n")
	b.WriteString(a.renderHints("l: open  space: toggle in folder  p: pins  r: reload  q: quit"))
	return b.String()
}

// renderFolder shows one folder's entries and places with checkmarks.
func (a App) renderFolder() string {
	var b strings.Builder

	b.WriteString(a.styles.Breadcrumb.Render(a.currentFolder))
	b.WriteString("\n\n")

	if len(a.items) == 0 {
		b.WriteString(a.styles.Empty.Render("Nothing in this folder."))
		b.WriteString("\n\n")
		b.WriteString(a.renderHints("h/esc: back  q: quit"))
		return b.String()
	}

	selected := make(map[string]bool, len(a.selectedIDs))
	for _, id := range a.selectedIDs {
		selected[id] = true
	}

	for i, item := range a.items {
		style := a.styles.Item
		if i == a.cursor {
			style = a.styles.ItemSelected
		}

		mark := "[ ]"
		if selected[item.ID()] {
			mark = a.styles.Checkmark.Render("[x]")
		}

		b.WriteString(fmt.Sprintf("%s %s\n", mark, style.Render(item.Title())))
		if detail := item.Detail(); detail != "" {
			b.WriteString(fmt.Sprintf("     %s\n", a.styles.Status.Render(detail)))
		}
	}

	b.WriteString("\n")
	b.WriteString(a.renderHints("space: toggle  h/esc: back  q: quit"))
	return b.String()
}

// renderPins shows the pin editor overlay.
func (a App) renderPins() string {
	var b strings.Builder

	b.WriteString(a.styles.Breadcrumb.Render(fmt.Sprintf("Pinned categories (max %d)", pins.MaxPinned)))
	b.WriteString("\n\n")

	rows := a.pinRows()
	for i, name := range rows {
		style := a.styles.Item
		if i == a.pinCursor {
			style = a.styles.ItemSelected
		}

		mark := "[ ]"
		if a.editor.IsPinned(name) {
			mark = a.styles.Pin.Render("[*]")
		}

		b.WriteString(fmt.Sprintf("%s %s\n", mark, style.Render(name)))
	}

	b.WriteString("\n")
	if a.pinErr != "" {
		b.WriteString(a.styles.Error.Render(a.pinErr))
		b.WriteString("\n")
	}

	if a.editor.Dirty() {
		b.WriteString(a.renderHints("space: pin/unpin  s: save  esc: close"))
	} else {
		b.WriteString(a.renderHints("space: pin/unpin  esc: close"))
	}
	return b.String()
}

// renderHelp shows the key binding overlay.
func (a App) renderHelp() string {
	help := `Navigation:
  j/k         move down/up
  h/l         back / open folder
  gg/G        jump to top/bottom

Sitter visibility:
  space       toggle item visibility (inside a folder)
  c           clear the whole selection

Pins:
  p           open the pin editor
  */space     pin or unpin a category (max 4)
  s           save pins

Other:
  r           reload from storage
  ?           close this help
  q           quit`

	return a.styles.Help.Render(help)
}

// renderHints renders the one-line key hint bar.
func (a App) renderHints(hints string) string {
	return a.styles.Help.Render(hints)
}
