package api

import (
	"context"
	"encoding/json"
	"net/http"

	"saborify/models"
)

func (c *Client) CreateReview(ctx context.Context, nr models.NewReview) (models.Review, error) {
	if err := nr.Validate(); err != nil {
		return models.Review{}, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodPost, path: "/resenia", body: nr, auth: true, op: "Error al crear la reseña"}, &raw); err != nil {
		return models.Review{}, err
	}
	review, _, err := decodeOne[models.Review](raw)
	if err != nil {
		return models.Review{}, err
	}
	if review.RecipeID.IsZero() {
		review.RecipeID = models.IDFromInt(nr.RecipeID)
	}
	if review.Rating == 0 {
		review.Rating = nr.Rating
		review.Comment = nr.Comment
	}
	return review, nil
}

// RecipeReviews unwraps {"data": [{"reseñas": [...]}]}.
func (c *Client) RecipeReviews(ctx context.Context, recipeID models.ID) ([]models.Review, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/resenias/" + escape(recipeID.String()), op: "Error al obtener las reseñas de la receta"}, &raw); err != nil {
		return nil, err
	}
	type withReviews struct {
		Reviews []models.Review `json:"reseñas"`
	}
	holder, found, err := decodeOne[withReviews](raw)
	if err != nil {
		return nil, err
	}
	if !found || holder.Reviews == nil {
		return []models.Review{}, nil
	}
	return holder.Reviews, nil
}

func (c *Client) DeleteReview(ctx context.Context, id models.ID) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/resenias/" + escape(id.String()), auth: true, op: "Error al eliminar la reseña"}, nil)
}
