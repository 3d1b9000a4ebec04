package model

import "time"

// Entry represents a piece of household information filed under a category,
// e.g. a gate code or a feeding instruction.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewEntryParams holds parameters for creating a new Entry.
type NewEntryParams struct {
	Title    string
	Content  string
	Category string
}

// NewEntry creates an Entry with generated UUID and timestamps.
func NewEntry(params NewEntryParams) Entry {
	now := time.Now()
	return Entry{
		ID:        GenerateUUID(),
		Title:     params.Title,
		Content:   params.Content,
		Category:  params.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
