// Package recipes serves the recipe views: listing, detail, editing,
// uploads, printing and the AI ingredient search.
package recipes

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/julienschmidt/httprouter"

	"saborify/api"
	"saborify/appstate"
	"saborify/favorites"
	"saborify/middleware"
	"saborify/models"
	"saborify/mq"
	"saborify/printout"
	"saborify/utils"
)

const maxUploadSize = 10 << 20

type Handler struct {
	api     *api.Client
	state   *appstate.Store
	clients *middleware.Clients
	events  *mq.Emitter
	printer *printout.Printer
}

func NewHandler(client *api.Client, state *appstate.Store, clients *middleware.Clients, events *mq.Emitter, printer *printout.Printer) *Handler {
	return &Handler{api: client, state: state, clients: clients, events: events, printer: printer}
}

// --- List Recipes ---

// GetRecipes serves the shared collection when no filter is given and asks
// the backend otherwise.
func (h *Handler) GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()
	var (
		list []models.Recipe
		err  error
	)
	switch {
	case q.Get("difficulty") != "":
		list, err = h.api.RecipesByDifficulty(ctx, q.Get("difficulty"))
	case q.Get("without_allergen") != "":
		list, err = h.api.RecipesWithoutAllergen(ctx, q.Get("without_allergen"))
	case q.Get("sort") == "longest":
		list, err = h.api.RecipesLongestFirst(ctx)
	case q.Get("sort") == "shortest":
		list, err = h.api.RecipesShortestFirst(ctx)
	case len(q) > 0:
		filters := url.Values{}
		for key, values := range q {
			if key == "sort" {
				continue
			}
			filters[key] = values
		}
		list, err = h.api.ListRecipes(ctx, filters)
	default:
		list = h.state.Recipes()
	}
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if list == nil {
		list = []models.Recipe{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) GetUserRecipes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	list, err := h.api.RecipesByUser(r.Context(), models.ID(ps.ByName("id")))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// --- Recipe detail ---

// GetRecipe fetches one recipe and copies its current rating into the
// browser's favourite snapshot, if it has one.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := models.ID(ps.ByName("id"))
	recipe, err := h.api.GetRecipe(r.Context(), id)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	favs := favorites.New(h.clients.Storage(r))
	if _, err := favs.UpdateRating(r.Context(), recipe.ID, recipe.Rating); err != nil {
		log.Printf("refresh favourite rating for %s: %v", recipe.ID, err)
	}
	h.state.SetSelectedRecipe(recipe)

	utils.RespondWithJSON(w, http.StatusOK, recipe)
}

// --- Create / Update / Delete ---

func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, _ := middleware.SessionFrom(r.Context())
	if !sess.CanCreateRecipe() {
		utils.RespondWithError(w, http.StatusForbidden, "Your role cannot create recipes")
		return
	}

	var recipe models.Recipe
	if err := utils.DecodeJSON(r, &recipe); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if err := validateRecipe(recipe); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if recipe.UserID.IsZero() {
		recipe.UserID = sess.User.ID
	}

	created, err := h.clients.Backend(r, h.api).CreateRecipe(r.Context(), recipe)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.refreshRecipes(r.Context())
	h.events.Emit(r.Context(), "recipe-created", mq.Index{EntityType: "recipe", Method: http.MethodPost, EntityId: created.ID.String()})
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := models.ID(ps.ByName("id"))
	if !h.authorizeEdit(w, r, id) {
		return
	}

	var recipe models.Recipe
	if err := utils.DecodeJSON(r, &recipe); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if err := validateRecipe(recipe); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	updated, err := h.clients.Backend(r, h.api).UpdateRecipe(r.Context(), id, recipe)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.refreshRecipes(r.Context())
	h.events.Emit(r.Context(), "recipe-updated", mq.Index{EntityType: "recipe", Method: http.MethodPut, EntityId: id.String()})
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := models.ID(ps.ByName("id"))
	if !h.authorizeEdit(w, r, id) {
		return
	}

	if err := h.clients.Backend(r, h.api).DeleteRecipe(r.Context(), id); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.refreshRecipes(r.Context())
	h.events.Emit(r.Context(), "recipe-deleted", mq.Index{EntityType: "recipe", Method: http.MethodDelete, EntityId: id.String()})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Recipe deleted"})
}

// refreshRecipes reloads the shared collection before the mutation is
// answered, so the next list view already shows it. Other instances catch
// up through the emitted event.
func (h *Handler) refreshRecipes(ctx context.Context) {
	if err := h.state.RefreshRecipes(ctx); err != nil {
		log.Printf("refresh recipes after mutation: %v", err)
	}
}

// authorizeEdit looks the recipe up to check ownership. It writes the
// response itself when the caller may not continue.
func (h *Handler) authorizeEdit(w http.ResponseWriter, r *http.Request, id models.ID) bool {
	sess, _ := middleware.SessionFrom(r.Context())
	recipe, ok := h.state.FindRecipe(id)
	if !ok {
		var err error
		recipe, err = h.api.GetRecipe(r.Context(), id)
		if err != nil {
			utils.RespondWithAPIError(w, err)
			return false
		}
	}
	if !sess.CanEditRecipe(recipe) {
		utils.RespondWithError(w, http.StatusForbidden, "You cannot edit this recipe")
		return false
	}
	return true
}

func validateRecipe(r models.Recipe) error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: recipe name is required", models.ErrValidation)
	case len(r.Ingredients) == 0:
		return fmt.Errorf("%w: add at least one ingredient", models.ErrValidation)
	case len(r.Steps) == 0:
		return fmt.Errorf("%w: add at least one step", models.ErrValidation)
	}
	return nil
}

// --- Image upload ---

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("imagen")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file missing")
		return
	}
	defer file.Close()

	result, err := h.clients.Backend(r, h.api).UploadImage(r.Context(), header.Filename, file)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// --- Print ---

func (h *Handler) PrintRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := models.ID(ps.ByName("id"))
	recipe, err := h.api.GetRecipe(r.Context(), id)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.printer.Recipe(&buf, recipe); err != nil {
		log.Printf("print recipe %s: %v", id, err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receta-"+id.String()+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
