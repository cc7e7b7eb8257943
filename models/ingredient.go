package models

type Ingredient struct {
	ID        ID       `json:"id"`
	Name      string   `json:"nombre"`
	Allergens []string `json:"alergenos,omitempty"`
}

type Allergen struct {
	ID   ID     `json:"id"`
	Name string `json:"nombre"`
}

// AllergenGroup lists every ingredient carrying one allergen. It only feeds
// the allergen filter dialog.
type AllergenGroup struct {
	Allergen    string       `json:"alergeno"`
	Ingredients []Ingredient `json:"ingredientes"`
}
