package appstate

import "saborify/models"

// Getters hand out copies; callers may modify them freely.

func (s *Store) Recipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Recipe{}, s.recipes...)
}

func (s *Store) MostViewed() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Recipe{}, s.mostViewed...)
}

func (s *Store) TopRated() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Recipe{}, s.topRated...)
}

func (s *Store) Ingredients() []models.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Ingredient{}, s.ingredients...)
}

func (s *Store) Allergens() []models.Allergen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Allergen{}, s.allergens...)
}

func (s *Store) AllergenGroups() []models.AllergenGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AllergenGroup{}, s.groups...)
}

func (s *Store) Difficulties() []models.Difficulty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Difficulty{}, s.difficulties...)
}

// FindRecipe looks a recipe up in the loaded collection.
func (s *Store) FindRecipe(id models.ID) (models.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return models.Recipe{}, false
}

// FindIngredient looks an ingredient up in the loaded collection.
func (s *Store) FindIngredient(id models.ID) (models.Ingredient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ing := range s.ingredients {
		if ing.ID == id {
			return ing, true
		}
	}
	return models.Ingredient{}, false
}

// Selection values are plain last-write-wins assignments.

type Selection struct {
	Recipe     models.Recipe     `json:"recipe"`
	Ingredient models.Ingredient `json:"ingredient"`
	Allergen   string            `json:"allergen"`
}

func (s *Store) SetSelectedRecipe(r models.Recipe) {
	s.mu.Lock()
	s.selectedRecipe = r
	s.mu.Unlock()
}

func (s *Store) SetSelectedIngredient(ing models.Ingredient) {
	s.mu.Lock()
	s.selectedIngredient = ing
	s.mu.Unlock()
}

func (s *Store) SetSelectedAllergen(name string) {
	s.mu.Lock()
	s.selectedAllergen = name
	s.mu.Unlock()
}

func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Selection{
		Recipe:     s.selectedRecipe,
		Ingredient: s.selectedIngredient,
		Allergen:   s.selectedAllergen,
	}
}

type Summary struct {
	Recipes        int       `json:"recipes"`
	Ingredients    int       `json:"ingredients"`
	Allergens      int       `json:"allergens"`
	AllergenGroups int       `json:"allergenGroups"`
	TopRated       int       `json:"topRated"`
	Difficulties   int       `json:"difficulties"`
	Selection      Selection `json:"selection"`
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summary{
		Recipes:        len(s.recipes),
		Ingredients:    len(s.ingredients),
		Allergens:      len(s.allergens),
		AllergenGroups: len(s.groups),
		TopRated:       len(s.topRated),
		Difficulties:   len(s.difficulties),
		Selection: Selection{
			Recipe:     s.selectedRecipe,
			Ingredient: s.selectedIngredient,
			Allergen:   s.selectedAllergen,
		},
	}
}
