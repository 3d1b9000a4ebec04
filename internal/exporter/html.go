package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coltonswapp/nestnote/internal/model"
)

// DefaultExportPath returns the default export file path inside dir.
// Format: <dir>/nest-sheet-YYYY-MM-DD.html
func DefaultExportPath(dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Downloads")
	}
	filename := fmt.Sprintf("nest-sheet-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(dir, filename), nil
}

// ExportHTML exports the whole nest to sitter sheet HTML.
func ExportHTML(nest *model.Nest) string {
	return ExportHTMLFiltered(nest, nil)
}

// ExportHTMLFiltered exports the nest to sitter sheet HTML, keeping only the
// items whose IDs appear in selectedIDs. A nil selectedIDs exports everything.
// Categories keep their full /-joined names so nesting survives a round trip.
func ExportHTMLFiltered(nest *model.Nest, selectedIDs []string) string {
	var keep map[string]bool
	if selectedIDs != nil {
		keep = make(map[string]bool, len(selectedIDs))
		for _, id := range selectedIDs {
			keep[id] = true
		}
	}
	included := func(id string) bool {
		return keep == nil || keep[id]
	}

	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Nest Sheet</title>\n")
	b.WriteString("<h1>Nest Sheet</h1>\n")
	b.WriteString("<dl>\n")

	for _, c := range nest.Categories {
		writeCategory(&b, nest, c, included)
	}

	b.WriteString("</dl>\n")

	return b.String()
}

// writeCategory writes one category section with its entries, places and
// routines. Empty sections are skipped.
func writeCategory(b *strings.Builder, nest *model.Nest, c model.Category, included func(string) bool) {
	var section strings.Builder

	for _, e := range nest.EntriesInCategory(c.Name) {
		if !included(e.ID) {
			continue
		}
		fmt.Fprintf(&section,
			"        <dt class=\"entry\" data-created=\"%s\">%s</dt>\n",
			e.CreatedAt.Format(time.RFC3339),
			html.EscapeString(e.Title),
		)
		fmt.Fprintf(&section, "        <dd>%s</dd>\n", html.EscapeString(e.Content))
	}

	for _, p := range nest.PlacesInCategory(c.Name) {
		if !included(p.ID) {
			continue
		}
		fmt.Fprintf(&section,
			"        <dt class=\"place\" data-address=\"%s\">%s</dt>\n",
			html.EscapeString(p.Address),
			html.EscapeString(p.Alias),
		)
	}

	for _, r := range nest.RoutinesInCategory(c.Name) {
		if !included(r.ID) {
			continue
		}
		fmt.Fprintf(&section,
			"        <dt class=\"routine\" data-frequency=\"%s\">%s</dt>\n",
			html.EscapeString(r.Frequency),
			html.EscapeString(r.Title),
		)
	}

	if section.Len() == 0 {
		return
	}

	fmt.Fprintf(b, "    <dt><h3 data-symbol=\"%s\">%s</h3></dt>\n",
		html.EscapeString(c.SymbolName),
		html.EscapeString(c.Name),
	)
	b.WriteString("    <dd><dl>\n")
	b.WriteString(section.String())
	b.WriteString("    </dl></dd>\n")
}
