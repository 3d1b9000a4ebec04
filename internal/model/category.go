package model

import "strings"

// PathSeparator splits nested category names, e.g. "Household/Garage".
const PathSeparator = "/"

// ReservedPlacesCategory is the synthetic category that holds places.
// It never appears in generic folder listings.
const ReservedPlacesCategory = "Places"

// Category represents a named grouping of entries, places and routines.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SymbolName string `json:"symbolName"`
}

// NewCategoryParams holds parameters for creating a new Category.
type NewCategoryParams struct {
	Name       string
	SymbolName string
}

// NewCategory creates a Category with a generated UUID.
func NewCategory(params NewCategoryParams) Category {
	return Category{
		ID:         GenerateUUID(),
		Name:       params.Name,
		SymbolName: params.SymbolName,
	}
}

// IsTopLevel reports whether name is a non-empty top-level category name,
// i.e. it contains no path separator.
func IsTopLevel(name string) bool {
	return name != "" && !strings.Contains(name, PathSeparator)
}

// IsReservedCategory reports whether name is the reserved "Places" category.
func IsReservedCategory(name string) bool {
	return name == ReservedPlacesCategory
}

// VisibleFolderName reports whether name should appear in generic folder
// listings: top-level and not reserved. All listing code goes through this
// predicate so the magic-string rules live in one place.
func VisibleFolderName(name string) bool {
	return IsTopLevel(name) && !IsReservedCategory(name)
}
