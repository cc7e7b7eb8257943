// Package auth signs browsers in and out. The backend owns the accounts;
// this side only keeps the returned session per browser.
package auth

import (
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"saborify/api"
	"saborify/favorites"
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds models.Credentials
	if err := utils.DecodeJSON(r, &creds); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if err := creds.Validate(); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	resp, err := h.api.Login(r.Context(), creds)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.startSession(w, r, resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reg models.Registration
	if err := utils.DecodeJSON(r, &reg); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if err := reg.Validate(); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	// self sign-up never grants admin
	reg.Role = models.RoleUser

	resp, err := h.api.Register(r.Context(), reg)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.startSession(w, r, resp)
}

func (h *Handler) Google(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cred models.GoogleCredential
	if err := utils.DecodeJSON(r, &cred); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if cred.Token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Google credential is required")
		return
	}

	resp, err := h.api.RegisterWithGoogle(r.Context(), cred)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.startSession(w, r, resp)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, resp models.AuthResponse) {
	sess, err := h.clients.Sessions(r).FromAuth(r.Context(), resp)
	if err != nil {
		log.Printf("store session: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Sign in did not return a session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"user":    sess.User,
		"message": resp.Message,
	})
}

// Logout tells the backend, then forgets the session and the favourites
// whatever the backend said.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.clients.Backend(r, h.api).Logout(r.Context()); err != nil {
		log.Printf("backend logout: %v", err)
	}

	store := h.clients.Storage(r)
	if err := h.clients.Sessions(r).Clear(r.Context()); err != nil {
		log.Printf("clear session: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear session")
		return
	}
	if err := favorites.New(store).Clear(r.Context()); err != nil {
		log.Printf("clear favourites: %v", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out"})
}

// Session reports who is signed in on this browser. The token stays
// server side.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok, err := h.clients.Sessions(r).Load(r.Context())
	if err != nil {
		log.Printf("load session: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read session")
		return
	}
	if !ok {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"authenticated": false})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"authenticated": true,
		"user":          sess.User,
		"canCreate":     sess.CanCreateRecipe(),
		"canUseAI":      sess.CanUseAI(),
	})
}
