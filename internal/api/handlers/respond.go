package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alex/deckshare/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondErrorMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondError translates domain errors to status codes in one place so
// handlers stay free of transport mapping. Anything unrecognized is a 500
// with a generic body; internals are logged, never sent to the caller.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrInvalidVisibility):
		respondErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNoViewAccess), errors.Is(err, domain.ErrNoEditAccess):
		respondErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrDeckNotFound),
		errors.Is(err, domain.ErrSlideNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		respondErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailExists):
		respondErrorMessage(w, http.StatusConflict, err.Error())
	default:
		log.Printf("ERROR [handlers] unexpected error: %v", err)
		respondErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
