package model

// ItemType distinguishes the kinds of items a category can hold.
type ItemType string

const (
	ItemTypeEntry   ItemType = "entry"
	ItemTypePlace   ItemType = "place"
	ItemTypeRoutine ItemType = "routine"
)

// ItemSummary is the id/category projection of any item, used by the
// visibility flow which does not care about item payloads.
type ItemSummary struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Type     ItemType `json:"type"`
}
