package recipes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"saborify/middleware"
	"saborify/models"
	"saborify/utils"
)

// SearchByIngredients is open to any signed in user.
func (h *Handler) SearchByIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, _ := middleware.SessionFrom(r.Context())
	if !sess.CanUseAI() {
		utils.RespondWithError(w, http.StatusForbidden, "Sign in to use the AI search")
		return
	}

	var body models.IngredientSearch
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	result, err := h.clients.Backend(r, h.api).SearchByIngredients(r.Context(), body.Ingredients)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) PopularIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.api.PopularIngredients(r.Context())
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) SuggestIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body models.IngredientSearch
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	list, err := h.api.SuggestIngredients(r.Context(), body.Ingredients)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"suggestions": list})
}

func (h *Handler) MealTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.api.MealTypes(r.Context())
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}
