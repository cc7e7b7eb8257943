package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"saborify/models"
)

func (c *Client) listRecipes(ctx context.Context, path, op string, query url.Values) ([]models.Recipe, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: path, query: query, op: op}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Recipe](raw)
}

// ListRecipes forwards every non-empty filter as a query parameter.
func (c *Client) ListRecipes(ctx context.Context, filters url.Values) ([]models.Recipe, error) {
	query := url.Values{}
	for key, values := range filters {
		for _, v := range values {
			if v != "" {
				query.Add(key, v)
			}
		}
	}
	return c.listRecipes(ctx, "/recetas", "Error al obtener las recetas", query)
}

func (c *Client) GetRecipe(ctx context.Context, id models.ID) (models.Recipe, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/recetas/" + escape(id.String()), op: "Error al obtener la receta"}, &raw); err != nil {
		return models.Recipe{}, err
	}
	r, found, err := decodeOne[models.Recipe](raw)
	if err != nil {
		return models.Recipe{}, err
	}
	if !found {
		return models.Recipe{}, &Error{Status: http.StatusNotFound, StatusText: http.StatusText(http.StatusNotFound), Message: "recipe not found"}
	}
	return r, nil
}

func (c *Client) CreateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodPost, path: "/recetas", body: r, auth: true, op: "Error al crear la receta"}, &raw); err != nil {
		return models.Recipe{}, err
	}
	created, _, err := decodeOne[models.Recipe](raw)
	return created, err
}

func (c *Client) UpdateRecipe(ctx context.Context, id models.ID, r models.Recipe) (models.Recipe, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodPut, path: "/recetas/" + escape(id.String()), body: r, auth: true, op: "Error al actualizar la receta"}, &raw); err != nil {
		return models.Recipe{}, err
	}
	updated, _, err := decodeOne[models.Recipe](raw)
	return updated, err
}

func (c *Client) DeleteRecipe(ctx context.Context, id models.ID) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/recetas/" + escape(id.String()), auth: true, op: "Error al eliminar la receta"}, nil)
}

func (c *Client) TopRatedRecipes(ctx context.Context) ([]models.Recipe, error) {
	return c.listRecipes(ctx, "/recetasMejorValoradas", "Error al obtener las recetas mejor valoradas", nil)
}

func (c *Client) RecipesWithoutAllergen(ctx context.Context, allergen string) ([]models.Recipe, error) {
	return c.listRecipes(ctx, "/recetasAlergenos/"+escape(allergen), "Error al obtener las recetas sin alérgeno", nil)
}

func (c *Client) RecipesLongestFirst(ctx context.Context) ([]models.Recipe, error) {
	return c.listRecipes(ctx, "/recetasMasTiempo", "Error al obtener las recetas con más tiempo", nil)
}

func (c *Client) RecipesShortestFirst(ctx context.Context) ([]models.Recipe, error) {
	return c.listRecipes(ctx, "/recetasMenosTiempo", "Error al obtener las recetas con menos tiempo", nil)
}

func (c *Client) RecipesByDifficulty(ctx context.Context, difficulty string) ([]models.Recipe, error) {
	return c.listRecipes(ctx, "/recetasPorDificultad/"+escape(difficulty), "Error al obtener las recetas por dificultad", nil)
}

func (c *Client) RecipesByUser(ctx context.Context, userID models.ID) ([]models.Recipe, error) {
	return c.listRecipes(ctx, "/recetasPorUsuario/"+escape(userID.String()), "Error al obtener las recetas por usuario", nil)
}

func (c *Client) Difficulties(ctx context.Context) ([]models.Difficulty, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/dificultades", op: "Error al obtener las dificultades"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Difficulty](raw)
}
