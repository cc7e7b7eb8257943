package favorites

import (
	"bytes"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"saborify/middleware"
	"saborify/models"
	"saborify/printout"
	"saborify/utils"
)

// Handler serves the favourites of the calling browser.
type Handler struct {
	clients *middleware.Clients
	printer *printout.Printer
}

func NewHandler(clients *middleware.Clients, printer *printout.Printer) *Handler {
	return &Handler{clients: clients, printer: printer}
}

func (h *Handler) store(r *http.Request) *Store {
	return New(h.clients.Storage(r))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.store(r).List(r.Context())
	if err != nil {
		log.Printf("list favourites: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read favourites")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var recipe models.Recipe
	if err := utils.DecodeJSON(r, &recipe); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	added, err := h.store(r).Add(r.Context(), recipe)
	if err != nil {
		h.fail(w, "add", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"added": added, "identity": IdentityOf(recipe).String()})
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var recipe models.Recipe
	if err := utils.DecodeJSON(r, &recipe); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	favourite, err := h.store(r).Toggle(r.Context(), recipe)
	if err != nil {
		h.fail(w, "toggle", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"favorite": favourite})
}

func (h *Handler) Contains(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var recipe models.Recipe
	if err := utils.DecodeJSON(r, &recipe); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	found, err := h.store(r).Contains(r.Context(), recipe)
	if err != nil {
		h.fail(w, "contains", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"favorite": found})
}

// Remove drops a stored recipe by id, or an AI recipe by content hash when
// called with ?kind=ephemeral.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("id")
	var (
		removed bool
		err     error
	)
	if r.URL.Query().Get("kind") == Ephemeral.String() {
		removed, err = h.store(r).RemoveByHash(r.Context(), key)
	} else {
		removed, err = h.store(r).RemoveByID(r.Context(), models.ID(key))
	}
	if err != nil {
		h.fail(w, "remove", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"removed": removed})
}

func (h *Handler) Print(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.store(r).List(r.Context())
	if err != nil {
		h.fail(w, "print", err)
		return
	}

	var buf bytes.Buffer
	if err := h.printer.Recipes(&buf, "Mis recetas favoritas", list); err != nil {
		log.Printf("print favourites: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=favoritos.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	code, msg := utils.StatusFor(err)
	if code != http.StatusBadRequest {
		log.Printf("favourites %s: %v", op, err)
		code, msg = http.StatusInternalServerError, "Failed to update favourites"
	}
	utils.RespondWithError(w, code, msg)
}
