package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"saborify/api"
	"saborify/models"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", fmt.Errorf("%w: add a comment", models.ErrValidation), http.StatusBadRequest, "validation failed: add a comment"},
		{"backend 4xx", &api.Error{Status: 404, Message: "not found"}, http.StatusNotFound, "not found"},
		{"backend 5xx", &api.Error{Status: 500, Message: "Error 500: Internal Server Error"}, http.StatusBadGateway, "Error 500: Internal Server Error"},
		{"transport", &api.TransportError{Op: "Error al obtener las recetas", Err: errors.New("dial tcp")}, http.StatusBadGateway, "Error al obtener las recetas"},
		{"wrapped 4xx", fmt.Errorf("refresh: %w", &api.Error{Status: 401, Message: "Unauthenticated."}), http.StatusUnauthorized, "Unauthenticated."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := StatusFor(tc.err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestRespondWithAPIError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithAPIError(w, &api.Error{Status: 422, Message: "The email has already been taken."})
	assert.Equal(t, 422, w.Code)
	assert.JSONEq(t, `{"error":"The email has already been taken."}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct{ A int }
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"A":1}`))
	assert.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, 1, v.A)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, DecodeJSON(r, &v), models.ErrValidation)
}
