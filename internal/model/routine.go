package model

// Routine represents a recurring task filed under a category.
type Routine struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Frequency string `json:"frequency"` // e.g. "daily", "weekly"
	Category  string `json:"category"`
}

// NewRoutineParams holds parameters for creating a new Routine.
type NewRoutineParams struct {
	Title     string
	Frequency string
	Category  string
}

// NewRoutine creates a Routine with a generated UUID.
func NewRoutine(params NewRoutineParams) Routine {
	return Routine{
		ID:        GenerateUUID(),
		Title:     params.Title,
		Frequency: params.Frequency,
		Category:  params.Category,
	}
}
