package models

type IngredientSearch struct {
	Ingredients []string `json:"ingredients"`
}

// AISearchResult mixes stored recipes with freshly generated ones.
type AISearchResult struct {
	Recipes   []Recipe `json:"recetas"`
	Message   string   `json:"message,omitempty"`
	Total     int      `json:"total"`
	FromStore int      `json:"recetas_bd"`
	FromAI    int      `json:"recetas_ia"`
}

type IngredientSuggestions struct {
	Suggestions []string `json:"suggestions"`
}
