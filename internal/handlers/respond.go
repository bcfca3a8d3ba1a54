package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/repository"
)

// validationResponse is the 422 body listing every rejected field.
type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps repository errors onto HTTP status codes.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var verr *repository.ValidationError
	var storageErr *db.StorageError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &storageErr):
		log.WithError(err).Error("Storage failure")
		http.Error(w, "Failed to save data to storage", http.StatusInternalServerError)
	default:
		log.WithError(err).Error("Request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeBody reads a JSON request body into T and writes a 400 on failure.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return v, false
	}
	if err := json.Unmarshal(body, &v); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return v, false
	}
	return v, true
}
