package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"saborify/api"
	"saborify/globals"
	"saborify/models"
	"saborify/session"
	"saborify/utils"
)

// Sessions returns the session store of the calling browser.
func (c *Clients) Sessions(r *http.Request) *session.Store {
	return session.New(c.Storage(r))
}

// Backend binds base to the calling browser's session token.
func (c *Clients) Backend(r *http.Request, base *api.Client) *api.Client {
	return base.WithToken(c.Sessions(r))
}

// RequireSession rejects anonymous browsers and puts the session on the
// context.
func (c *Clients) RequireSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sess, ok, err := c.Sessions(r).Load(r.Context())
		if err != nil {
			log.Printf("load session: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read session")
			return
		}
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Sign in first")
			return
		}
		ctx := context.WithValue(r.Context(), globals.SessionKey, sess)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalSession loads the session when there is one and never rejects.
func (c *Clients) OptionalSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if sess, ok, err := c.Sessions(r).Load(r.Context()); err == nil && ok {
			r = r.WithContext(context.WithValue(r.Context(), globals.SessionKey, sess))
		}
		next(w, r, ps)
	}
}

// RequireAdmin must sit inside RequireSession.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sess, ok := SessionFrom(r.Context())
		if !ok || !sess.User.IsAdmin() {
			utils.RespondWithError(w, http.StatusForbidden, "Admins only")
			return
		}
		next(w, r, ps)
	}
}

// SessionFrom returns the session RequireSession or OptionalSession stored.
func SessionFrom(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(globals.SessionKey).(models.Session)
	return sess, ok
}
