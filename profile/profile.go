package profile

import (
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"saborify/api"
	"saborify/middleware"
	"saborify/models"
	"saborify/utils"
)

type Handler struct {
	api     *api.Client
	clients *middleware.Clients
}

func NewHandler(client *api.Client, clients *middleware.Clients) *Handler {
	return &Handler{api: client, clients: clients}
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.clients.Backend(r, h.api).CurrentUser(r.Context())
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile sends the edit and merges whatever user the backend
// returns into the stored session.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, _ := middleware.SessionFrom(r.Context())

	var upd models.UserUpdate
	if err := utils.DecodeJSON(r, &upd); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	upd.UserID = sess.User.ID
	if err := upd.Validate(); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	resp, err := h.clients.Backend(r, h.api).UpdateUser(r.Context(), upd)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	merged, err := h.clients.Sessions(r).UpdateUser(r.Context(), resp.User)
	if err != nil {
		log.Printf("merge profile into session: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"user":    merged.User,
		"message": resp.Message,
	})
}

// GetUsers sits behind RequireAdmin.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.api.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// CreateToken hands out a personal access token from the backend.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token, err := h.clients.Backend(r, h.api).CreateToken(r.Context())
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token})
}
