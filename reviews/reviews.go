package reviews

import (
	"context"
	"log"
	"net/http"
	"strconv"

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

// refreshRecipes picks up the rating a review changed.
func (h *Handler) refreshRecipes(ctx context.Context) {
	if err := h.state.RefreshRecipes(ctx); err != nil {
		log.Printf("refresh recipes after review: %v", err)
	}
}

func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	list, err := h.api.RecipeReviews(r.Context(), models.ID(ps.ByName("id")))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type reviewRequest struct {
	Rating  int    `json:"puntuacion"`
	Comment string `json:"comentario"`
}

// AddReview posts a review for the recipe in the path, signed with the
// session's user id.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, _ := middleware.SessionFrom(r.Context())

	recipeID, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}
	userID := sess.User.ID.Int64()

	var body reviewRequest
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	review, err := h.clients.Backend(r, h.api).CreateReview(r.Context(), models.NewReview{
		RecipeID: recipeID,
		UserID:   userID,
		Rating:   body.Rating,
		Comment:  body.Comment,
	})
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.refreshRecipes(r.Context())
	h.events.Emit(r.Context(), "review-created", mq.Index{EntityType: "review", Method: http.MethodPost, EntityId: review.ID.String()})
	utils.RespondWithJSON(w, http.StatusCreated, review)
}

// DeleteReview sits behind RequireAdmin.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := models.ID(ps.ByName("id"))
	if err := h.clients.Backend(r, h.api).DeleteReview(r.Context(), id); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.refreshRecipes(r.Context())
	h.events.Emit(r.Context(), "review-deleted", mq.Index{EntityType: "review", Method: http.MethodDelete, EntityId: id.String()})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Review deleted"})
}
