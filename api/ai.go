package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"saborify/models"
)

// SearchByIngredients asks the backend for stored and AI generated recipes
// built from the given ingredients. Ingredients are lower-cased and
// de-duplicated first, as the search view did.
func (c *Client) SearchByIngredients(ctx context.Context, ingredients []string) (models.AISearchResult, error) {
	var out models.AISearchResult
	body := models.IngredientSearch{Ingredients: normalizeIngredients(ingredients)}
	if len(body.Ingredients) == 0 {
		return out, fmt.Errorf("%w: add at least one ingredient", models.ErrValidation)
	}
	err := c.do(ctx, call{method: http.MethodPost, path: "/buscar-recetas-ingredientes", body: body, op: "Error al buscar recetas por ingredientes"}, &out)
	if err != nil {
		return out, err
	}
	if out.Recipes == nil {
		out.Recipes = []models.Recipe{}
	}
	if out.Total == 0 {
		out.Total = len(out.Recipes)
	}
	return out, nil
}

// PopularIngredients accepts a bare list or {"ingredientes": [...]}.
func (c *Client) PopularIngredients(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/ingredientes-populares", op: "Error al obtener ingredientes populares"}, &raw); err != nil {
		return nil, err
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Ingredients []string `json:"ingredientes"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Ingredients == nil {
		return []string{}, nil
	}
	return wrapped.Ingredients, nil
}

func (c *Client) SuggestIngredients(ctx context.Context, ingredients []string) ([]string, error) {
	var out models.IngredientSuggestions
	body := models.IngredientSearch{Ingredients: normalizeIngredients(ingredients)}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/sugerir-ingrediente", body: body, op: "Error al obtener sugerencias de ingredientes"}, &out); err != nil {
		return nil, err
	}
	if out.Suggestions == nil {
		return []string{}, nil
	}
	return out.Suggestions, nil
}

func normalizeIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, ing := range in {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing == "" || seen[ing] {
			continue
		}
		seen[ing] = true
		out = append(out, ing)
	}
	return out
}
