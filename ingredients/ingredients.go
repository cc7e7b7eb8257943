package ingredients

import (
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"saborify/api"
	"saborify/appstate"
	"saborify/middleware"
	"saborify/models"
	"saborify/mq"
	"saborify/utils"
)

type Handler struct {
	api     *api.Client
	state   *appstate.Store
	clients *middleware.Clients
	events  *mq.Emitter
}

func NewHandler(client *api.Client, state *appstate.Store, clients *middleware.Clients, events *mq.Emitter) *Handler {
	return &Handler{api: client, state: state, clients: clients, events: events}
}

// GetIngredients serves the collection loaded at start up, falling back to
// the backend when that load came back empty.
func (h *Handler) GetIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list := h.state.Ingredients()
	if len(list) == 0 {
		var err error
		list, err = h.api.ListIngredients(r.Context())
		if err != nil {
			utils.RespondWithAPIError(w, err)
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) GetIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := models.ID(ps.ByName("id"))
	ing, err := h.api.GetIngredient(r.Context(), id)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.state.SetSelectedIngredient(ing)
	utils.RespondWithJSON(w, http.StatusOK, ing)
}

func (h *Handler) GetIngredientRecipes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	list, err := h.api.RecipesWithIngredient(r.Context(), models.ID(ps.ByName("id")))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// DeleteIngredient sits behind RequireAdmin.
func (h *Handler) DeleteIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := models.ID(ps.ByName("id"))
	if err := h.clients.Backend(r, h.api).DeleteIngredient(r.Context(), id); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if err := h.state.RefreshIngredients(r.Context()); err != nil {
		log.Printf("refresh ingredients after delete: %v", err)
	}
	h.events.Emit(r.Context(), "ingredient-deleted", mq.Index{EntityType: "ingredient", Method: http.MethodDelete, EntityId: id.String()})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Ingredient deleted"})
}

func (h *Handler) GetAllergens(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list := h.state.Allergens()
	if len(list) == 0 {
		var err error
		list, err = h.api.Allergens(r.Context())
		if err != nil {
			utils.RespondWithAPIError(w, err)
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) GetAllergenGroups(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list := h.state.AllergenGroups()
	if len(list) == 0 {
		var err error
		list, err = h.api.AllergenGroups(r.Context())
		if err != nil {
			utils.RespondWithAPIError(w, err)
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}
