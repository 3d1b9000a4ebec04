package model

// Place represents a saved location (vet, school, grandma's house).
type Place struct {
	ID       string `json:"id"`
	Alias    string `json:"alias"`
	Address  string `json:"address"`
	Category string `json:"category"`
}

// NewPlaceParams holds parameters for creating a new Place.
type NewPlaceParams struct {
	Alias    string
	Address  string
	Category string
}

// NewPlace creates a Place with a generated UUID. An empty category defaults
// to the reserved "Places" category.
func NewPlace(params NewPlaceParams) Place {
	category := params.Category
	if category == "" {
		category = ReservedPlacesCategory
	}
	return Place{
		ID:       GenerateUUID(),
		Alias:    params.Alias,
		Address:  params.Address,
		Category: category,
	}
}
