package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saborify/globals"
	"saborify/kv"
	"saborify/middleware"
	"saborify/ratelim"
)

func TestCookielessRequestsAreRateLimited(t *testing.T) {
	clients := middleware.NewClients([]byte("test-secret"), kv.NewMemory(), false)
	rl := ratelim.NewRateLimiter(2)
	h := public(Handlers{Clients: clients}, rl)(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	send := func(cookie *http.Cookie) int {
		r := httptest.NewRequest(http.MethodGet, "/api/state", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		if cookie != nil {
			r.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		h(w, r, nil)
		return w.Code
	}

	codes := map[int]int{}
	for i := 0; i < 50; i++ {
		codes[send(nil)]++
	}
	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 48, codes[http.StatusTooManyRequests])
	assert.Equal(t, 1, rl.Len(), "cookieless requests share one visitor")

	// a browser that kept its cookie has its own bucket
	_, token, err := clients.Issue()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, send(&http.Cookie{Name: globals.CookieName, Value: token}))
}
