package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteCountsByPattern(t *testing.T) {
	c := New()
	h := c.Route("/api/recipes/:id", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/api/recipes/1", "/api/recipes/2"} {
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil), nil)
	}

	got := testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/recipes/:id", "418"))
	assert.Equal(t, 2.0, got)
}

func TestRouteDefaultsToOK(t *testing.T) {
	c := New()
	h := c.Route("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Write([]byte("ok"))
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil), nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200")))
}

func TestTransportCountsBackendCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New()
	client := &http.Client{Transport: c.Transport(nil)}
	resp, err := client.Get(srv.URL + "/recetas/1")
	require.NoError(t, err)
	resp.Body.Close()

	srv.Close()
	_, err = client.Get(srv.URL + "/recetas/1")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.BackendCallsTotal.WithLabelValues(http.MethodGet, "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BackendCallsTotal.WithLabelValues(http.MethodGet, "error")))
}
