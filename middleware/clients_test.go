package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saborify/globals"
	"saborify/kv"
	"saborify/models"
	"saborify/session"
)

func echoClient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Write([]byte(ClientID(r.Context())))
}

func TestIdentifyMintsAndReusesCookie(t *testing.T) {
	c := NewClients([]byte("secret"), kv.NewMemory(), false)
	h := c.Identify(echoClient)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	first := w.Body.String()
	require.NotEmpty(t, first)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, globals.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	h(w, r, nil)
	assert.Equal(t, first, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "a valid cookie is not reissued")
}

func TestIdentifyRejectsForeignSignature(t *testing.T) {
	other := NewClients([]byte("other-secret"), kv.NewMemory(), false)
	_, token, err := other.Issue()
	require.NoError(t, err)

	c := NewClients([]byte("secret"), kv.NewMemory(), false)
	_, err = c.Validate(token)
	assert.Error(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: globals.CookieName, Value: token})
	w := httptest.NewRecorder()
	c.Identify(echoClient)(w, r, nil)
	assert.Len(t, w.Result().Cookies(), 1, "forged cookie gets replaced")
}

func TestStorageIsPerClient(t *testing.T) {
	ctx := context.Background()
	base := kv.NewMemory()
	c := NewClients([]byte("secret"), base, false)

	reqFor := func(id string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		return r.WithContext(context.WithValue(r.Context(), globals.ClientIDKey, id))
	}

	require.NoError(t, c.Storage(reqFor("a")).Set(ctx, "k", []byte("v")))
	_, err := c.Storage(reqFor("b")).Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	got, err := base.Get(ctx, "client:a:k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestRequireSessionAndAdmin(t *testing.T) {
	ctx := context.Background()
	base := kv.NewMemory()
	c := NewClients([]byte("secret"), base, false)

	reached := false
	final := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		reached = true
		sess, ok := SessionFrom(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "tok", sess.Token)
	}
	h := Chain(c.RequireSession, RequireAdmin)(final)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), globals.ClientIDKey, "a"))

	w := httptest.NewRecorder()
	h(w, r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	sessions := session.New(kv.Namespace(base, "client:a:"))
	require.NoError(t, sessions.Save(ctx, models.Session{Token: "tok", User: models.User{ID: "1", Role: models.RoleUser}}))
	w = httptest.NewRecorder()
	h(w, r, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, reached)

	require.NoError(t, sessions.Save(ctx, models.Session{Token: "tok", User: models.User{ID: "1", Role: models.RoleAdmin}}))
	w = httptest.NewRecorder()
	h(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next httprouter.Handle) httprouter.Handle {
			return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
				order = append(order, name)
				next(w, r, ps)
			}
		}
	}
	Chain(mark("a"), mark("b"), mark("c"))(func(http.ResponseWriter, *http.Request, httprouter.Params) {
		order = append(order, "handler")
	})(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, []string{"a", "b", "c", "handler"}, order)
}

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
