package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alex/deckshare/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SlideRequest struct {
	Content datatypes.JSON `json:"content"`
}

func slideIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "slideID"))
	return id, err == nil
}

func (h *DeckHandler) ListSlides(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	if !h.requireView(w, r, deckID) {
		return
	}

	slides, err := h.deckService.ListSlides(r.Context(), deckID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]*domain.Slide{"slides": slides})
}

func (h *DeckHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	if !h.requireEdit(w, r, deckID) {
		return
	}

	var req SlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slide, err := h.deckService.AddSlide(r.Context(), deckID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, slide)
}

func (h *DeckHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}
	slideID, ok := slideIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid slide id")
		return
	}

	if !h.requireEdit(w, r, deckID) {
		return
	}

	var req SlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slide, err := h.deckService.UpdateSlide(r.Context(), deckID, slideID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, slide)
}

func (h *DeckHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}
	slideID, ok := slideIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid slide id")
		return
	}

	if !h.requireEdit(w, r, deckID) {
		return
	}

	if err := h.deckService.DeleteSlide(r.Context(), deckID, slideID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
