package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"saborify/api"
	"saborify/models"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithAPIError maps a client or store error onto a status code.
// Validation failures are 400, backend 4xx pass through and anything else
// is reported as a bad gateway.
func RespondWithAPIError(w http.ResponseWriter, err error) {
	code, msg := StatusFor(err)
	if code >= http.StatusInternalServerError {
		log.Printf("backend call failed: %v", err)
	}
	RespondWithError(w, code, msg)
}

func StatusFor(err error) (int, string) {
	if errors.Is(err, models.ErrValidation) {
		return http.StatusBadRequest, err.Error()
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status, apiErr.Message
		}
		return http.StatusBadGateway, apiErr.Message
	}
	var te *api.TransportError
	if errors.As(err, &te) {
		return http.StatusBadGateway, te.Op
	}
	return http.StatusBadGateway, err.Error()
}

// DecodeJSON reads a request body into v. A malformed body is a
// validation error.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", models.ErrValidation)
	}
	return nil
}

type M map[string]interface{}
