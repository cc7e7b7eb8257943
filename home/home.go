// Package home serves the shared state the landing page is built from.
package home

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"saborify/appstate"
	"saborify/models"
	"saborify/utils"
)

type Handler struct {
	state *appstate.Store
}

func NewHandler(state *appstate.Store) *Handler {
	return &Handler{state: state}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.state.Summary())
}

func (h *Handler) GetMostViewed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, nonNil(h.state.MostViewed()))
}

func (h *Handler) GetTopRated(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, nonNil(h.state.TopRated()))
}

func (h *Handler) GetDifficulties(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list := h.state.Difficulties()
	if list == nil {
		list = []models.Difficulty{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// Refresh re-fetches the recipe collection and redraws the most viewed
// sample.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := h.state.RefreshRecipes(ctx); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.state.Summary())
}

type selectionRequest struct {
	RecipeID     *models.ID `json:"recipeId"`
	IngredientID *models.ID `json:"ingredientId"`
	Allergen     *string    `json:"allergen"`
}

// SetSelection updates only the pointers present in the body. Ids must
// name something in the loaded collections.
func (h *Handler) SetSelection(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body selectionRequest
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	if body.RecipeID != nil {
		recipe, ok := h.state.FindRecipe(*body.RecipeID)
		if !ok {
			utils.RespondWithError(w, http.StatusNotFound, "recipe not found")
			return
		}
		h.state.SetSelectedRecipe(recipe)
	}
	if body.IngredientID != nil {
		ing, ok := h.state.FindIngredient(*body.IngredientID)
		if !ok {
			utils.RespondWithError(w, http.StatusNotFound, "ingredient not found")
			return
		}
		h.state.SetSelectedIngredient(ing)
	}
	if body.Allergen != nil {
		h.state.SetSelectedAllergen(allergenName(*body.Allergen))
	}
	utils.RespondWithJSON(w, http.StatusOK, h.state.Selection())
}

// allergenName drops the icon the allergen groups are labelled with, so
// "🥜 Cacahuetes" selects "Cacahuetes".
func allergenName(label string) string {
	label = strings.TrimSpace(label)
	if _, name, ok := strings.Cut(label, " "); ok {
		return strings.TrimSpace(name)
	}
	return label
}

func nonNil(list []models.Recipe) []models.Recipe {
	if list == nil {
		return []models.Recipe{}
	}
	return list
}
