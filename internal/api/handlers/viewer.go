package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type GrantViewerRequest struct {
	Email string `json:"email"`
}

type ViewerResponse struct {
	DeckID string       `json:"deckId"`
	User   UserResponse `json:"user"`
}

func (h *DeckHandler) ListViewers(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	if !h.requireEdit(w, r, deckID) {
		return
	}

	viewers, err := h.deckService.ListViewers(r.Context(), deckID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]ViewerResponse, 0, len(viewers))
	for _, v := range viewers {
		item := ViewerResponse{DeckID: v.DeckID.String()}
		if v.User != nil {
			item.User = newUserResponse(v.User)
		}
		resp = append(resp, item)
	}

	respondJSON(w, http.StatusOK, map[string][]ViewerResponse{"viewers": resp})
}

func (h *DeckHandler) GrantViewer(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	if !h.requireEdit(w, r, deckID) {
		return
	}

	var req GrantViewerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondErrorMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	deck, err := h.deckService.Get(r.Context(), deckID)
	if err != nil {
		respondError(w, err)
		return
	}

	grantee, err := h.deckService.GrantViewer(r.Context(), deck, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ViewerResponse{
		DeckID: deckID.String(),
		User:   newUserResponse(grantee),
	})
}

func (h *DeckHandler) RevokeViewer(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if !h.requireEdit(w, r, deckID) {
		return
	}

	if err := h.deckService.RevokeViewer(r.Context(), deckID, userID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
