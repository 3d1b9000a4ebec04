package importer

import (
	"io"
	"strings"
	"time"

	"github.com/coltonswapp/nestnote/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLSheet parses sitter sheet HTML (the exporter's format) back into
// a nest. Categories keep their full /-joined names, so nesting survives.
func ParseHTMLSheet(r io.Reader) (*model.Nest, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	nest := model.NewNest()

	var currentCategory string
	var pendingEntry *model.Entry // entry waiting for its <dd> content

	flushPending := func() {
		if pendingEntry != nil {
			nest.Entries = append(nest.Entries, *pendingEntry)
			pendingEntry = nil
		}
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Category definition
				flushPending()
				name := getTextContent(n)
				if name != "" {
					currentCategory = name
					nest.Categories = append(nest.Categories, model.Category{
						ID:         model.GenerateUUID(),
						Name:       name,
						SymbolName: getAttr(n, "data-symbol"),
					})
				}
				return // Don't recurse into H3

			case "dt":
				switch getAttr(n, "class") {
				case "entry":
					flushPending()
					title := getTextContent(n)
					if title == "" || currentCategory == "" {
						return
					}
					createdAt := time.Now()
					if raw := getAttr(n, "data-created"); raw != "" {
						if ts, err := time.Parse(time.RFC3339, raw); err == nil {
							createdAt = ts
						}
					}
					pendingEntry = &model.Entry{
						ID:        model.GenerateUUID(),
						Title:     title,
						Category:  currentCategory,
						CreatedAt: createdAt,
						UpdatedAt: createdAt,
					}
					return

				case "place":
					flushPending()
					alias := getTextContent(n)
					if alias == "" || currentCategory == "" {
						return
					}
					nest.Places = append(nest.Places, model.Place{
						ID:       model.GenerateUUID(),
						Alias:    alias,
						Address:  getAttr(n, "data-address"),
						Category: currentCategory,
					})
					return

				case "routine":
					flushPending()
					title := getTextContent(n)
					if title == "" || currentCategory == "" {
						return
					}
					nest.Routines = append(nest.Routines, model.Routine{
						ID:        model.GenerateUUID(),
						Title:     title,
						Frequency: getAttr(n, "data-frequency"),
						Category:  currentCategory,
					})
					return
				}

			case "dd":
				// Content for the pending entry, if any
				if pendingEntry != nil {
					pendingEntry.Content = getTextContent(n)
					flushPending()
					return
				}
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	flushPending()
	return nest, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
