package api

import (
	"context"
	"encoding/json"
	"net/http"

	"saborify/models"
)

func (c *Client) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/ingredientes", op: "Error al obtener los ingredientes"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Ingredient](raw)
}

func (c *Client) RecipesWithIngredient(ctx context.Context, id models.ID) ([]models.Recipe, error) {
	return c.listRecipes(ctx, "/"+escape(id.String())+"/recetas", "Error al obtener recetas del ingrediente", nil)
}

func (c *Client) AllergenGroups(ctx context.Context) ([]models.AllergenGroup, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/ingredientes-alergenos", op: "Error al obtener ingredientes con alérgenos"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.AllergenGroup](raw)
}

func (c *Client) GetIngredient(ctx context.Context, id models.ID) (models.Ingredient, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/ingredientes/" + escape(id.String()), op: "Error al obtener el ingrediente"}, &raw); err != nil {
		return models.Ingredient{}, err
	}
	ing, found, err := decodeOne[models.Ingredient](raw)
	if err != nil {
		return models.Ingredient{}, err
	}
	if !found {
		return models.Ingredient{}, &Error{Status: http.StatusNotFound, StatusText: http.StatusText(http.StatusNotFound), Message: "ingredient not found"}
	}
	return ing, nil
}

func (c *Client) DeleteIngredient(ctx context.Context, id models.ID) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/ingredientes/" + escape(id.String()), auth: true, op: "Error al eliminar el ingrediente"}, nil)
}

func (c *Client) Allergens(ctx context.Context) ([]models.Allergen, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/alergenos", op: "Error al obtener los alérgenos"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Allergen](raw)
}

func (c *Client) MealTypes(ctx context.Context) ([]models.MealType, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/tiposComida", op: "Error al cargar los tipos de comida"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.MealType](raw)
}
