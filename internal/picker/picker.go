// Package picker is the one-shot selection model behind `nn <query>`: it
// lists fuzzy search results, highlights the matched characters, and hands
// the chosen entry back to the caller for the clipboard copy.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coltonswapp/nestnote/internal/model"
	"github.com/coltonswapp/nestnote/internal/search"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	headerStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"})
	matchStyle  = lipgloss.NewStyle().Foreground(accent).Underline(true)
	metaStyle   = lipgloss.NewStyle().Foreground(subtle)
	hintStyle   = lipgloss.NewStyle().Foreground(subtle).PaddingTop(1)
)

// Picker lists search results and resolves to at most one chosen entry.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			p.cancelled = true
			return p, tea.Quit
		case "enter":
			p.selected = true
			return p, tea.Quit
		case "down", "j":
			p = p.move(1)
		case "up", "k":
			p = p.move(-1)
		}
	}

	return p, nil
}

// move shifts the cursor by delta, staying inside the result list.
func (p Picker) move(delta int) Picker {
	next := p.cursor + delta
	if next < 0 || next >= len(p.results) {
		return p
	}
	p.cursor = next
	return p
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%d matches for %q", len(p.results), p.query)))
	b.WriteString("\n\n")

	for i, result := range p.results {
		marker := "  "
		if i == p.cursor {
			marker = cursorStyle.Render("> ")
		}

		b.WriteString(marker)
		b.WriteString(highlightMatches(result.Entry.Title, result.MatchedIndexes))
		b.WriteString("  ")
		b.WriteString(metaStyle.Render(result.Entry.Category))
		b.WriteString("\n")

		if preview := truncate(result.Entry.Content, p.width-6); preview != "" {
			b.WriteString("    ")
			b.WriteString(metaStyle.Render(preview))
			b.WriteString("\n")
		}
	}

	b.WriteString(hintStyle.Render("j/k move · enter copy · esc cancel"))

	return b.String()
}

// highlightMatches underlines the characters the fuzzy matcher hit.
func highlightMatches(title string, indexes []int) string {
	if len(indexes) == 0 {
		return titleStyle.Render(title)
	}

	matched := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range title {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(titleStyle.Render(string(r)))
		}
	}
	return b.String()
}

// truncate cuts s to at most max runes, ending in an ellipsis.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// SelectedEntry returns the chosen entry, or nil if the picker was cancelled.
func (p Picker) SelectedEntry() *model.Entry {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Entry
	}
	return nil
}

// Cancelled reports whether the user backed out without choosing.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
