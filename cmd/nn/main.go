package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coltonswapp/nestnote/internal/exporter"
	"github.com/coltonswapp/nestnote/internal/importer"
	"github.com/coltonswapp/nestnote/internal/logger"
	"github.com/coltonswapp/nestnote/internal/model"
	"github.com/coltonswapp/nestnote/internal/picker"
	"github.com/coltonswapp/nestnote/internal/search"
	"github.com/coltonswapp/nestnote/internal/service"
	"github.com/coltonswapp/nestnote/internal/storage"
	"github.com/coltonswapp/nestnote/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: nn import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			// Export with optional path
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `nn - nest manager for household sitter handoffs

Usage:
  nn                    Open interactive TUI
  nn <query>            Quick search → select → copy to clipboard
  nn import <file>      Import a sitter sheet from HTML
  nn export [path]      Export the sitter sheet to HTML
  nn help               Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    h/l         Back / open folder
    gg/G        Jump to top/bottom

  Sitter visibility:
    space       Toggle item visibility (inside a folder)
    c           Clear the whole selection

  Pins:
    p           Open the pin editor
    */space     Pin or unpin a category (max 4)
    s           Save pins

  Other:
    r           Reload from storage
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/nn/nest.json (or nest.db when SQLite is in use)

Environment:
  NN_DATA_PATH    Override the SQLite database location
  NN_LOG_FILE     Log file (default ~/.config/nn/nn.log)
  NN_LOG_LEVEL    debug, info, warn, error (default info)
  NN_EXPORT_DIR   Default export directory (default ~/Downloads)
`
	fmt.Print(help)
}

// setup loads config, opens storage and builds the logger. Every subcommand
// starts here.
func setup(role string) (*storage.Config, storage.Storage, *logger.Logger) {
	cfg, err := storage.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(role, cfg.LogFile, cfg.LogLevel)

	store, err := storage.OpenStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	return cfg, store, log
}

// runTUI runs the full interactive TUI.
func runTUI() {
	_, store, log := setup("tui")
	svc := service.NewNestService(store, log)

	app := tui.NewApp(tui.AppParams{Source: svc, Log: log})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy search and copies the selected entry's
// content to the clipboard.
func runQuickSearch(query string) {
	_, store, _ := setup("cli")

	nest, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading nest: %v\n", err)
		os.Exit(1)
	}

	results := search.FuzzySearchEntries(nest, query)

	if len(results) == 0 {
		fmt.Printf("No entries found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Entry

	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Entry
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedEntry()
	}

	if selected == nil {
		os.Exit(0)
	}

	if err := clipboard.WriteAll(selected.Content); err != nil {
		fmt.Fprintf(os.Stderr, "Error copying to clipboard: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Copied '%s' to clipboard\n", selected.Title)
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	_, store, log := setup("cli")

	nest, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading nest: %v\n", err)
		os.Exit(1)
	}

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	imported, err := importer.ParseHTMLSheet(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	added, skipped := nest.ImportMerge(imported)

	if err := store.Save(nest); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving nest: %v\n", err)
		os.Exit(1)
	}

	log.Info().Int("added", added).Int("skipped", skipped).Str("file", filePath).Msg("sheet imported")
	fmt.Printf("Imported %d items", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	cfg, store, log := setup("cli")

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath(cfg.ExportDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	nest, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading nest: %v\n", err)
		os.Exit(1)
	}

	html := exporter.ExportHTML(nest)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	log.Info().Str("path", outputPath).Msg("sheet exported")
	fmt.Printf("Exported %d entries, %d places to %s\n",
		len(nest.Entries), len(nest.Places), outputPath)
}
