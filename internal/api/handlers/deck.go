package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alex/deckshare/internal/api/middleware"
	"github.com/alex/deckshare/internal/domain"
	"github.com/alex/deckshare/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type DeckHandler struct {
	deckService   *service.DeckService
	accessService *service.AccessService
}

func NewDeckHandler(deckService *service.DeckService, accessService *service.AccessService) *DeckHandler {
	return &DeckHandler{
		deckService:   deckService,
		accessService: accessService,
	}
}

type CreateDeckRequest struct {
	Title string `json:"title"`
}

type UpdateDeckRequest struct {
	Title      *string `json:"title"`
	Visibility *string `json:"visibility"`
	ShareToken *string `json:"share_token"`
}

func deckIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "deckID"))
	return id, err == nil
}

// requireView runs the view policy for the request. The denial status
// depends on who asked: an authenticated caller gets 403, an anonymous one
// gets 401 so clients can prompt for login or a share link.
func (h *DeckHandler) requireView(w http.ResponseWriter, r *http.Request, deckID uuid.UUID) bool {
	var callerID *uuid.UUID
	if id, ok := middleware.GetUserID(r.Context()); ok {
		callerID = &id
	}
	shareToken := r.URL.Query().Get("token")

	allowed, err := h.accessService.CanViewDeck(r.Context(), deckID, callerID, shareToken)
	if err != nil {
		respondError(w, err)
		return false
	}
	if !allowed {
		if callerID != nil {
			respondErrorMessage(w, http.StatusForbidden, "no view access")
		} else {
			respondErrorMessage(w, http.StatusUnauthorized, "authentication or share token required")
		}
		return false
	}
	return true
}

// requireEdit runs the edit policy; only the owner passes.
func (h *DeckHandler) requireEdit(w http.ResponseWriter, r *http.Request, deckID uuid.UUID) bool {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "missing or invalid token")
		return false
	}

	allowed, err := h.accessService.CanEditDeck(r.Context(), deckID, userID)
	if err != nil {
		respondError(w, err)
		return false
	}
	if !allowed {
		respondErrorMessage(w, http.StatusForbidden, "no edit access")
		return false
	}
	return true
}

func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	decks, err := h.deckService.ListOwned(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]*domain.Deck{"decks": decks})
}

func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondErrorMessage(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var req CreateDeckRequest
	if r.Body != nil {
		// Body is optional; a bare POST creates an untitled deck.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	deck, err := h.deckService.Create(r.Context(), userID, req.Title)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, deck)
}

func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	if !h.requireView(w, r, deckID) {
		return
	}

	deck, err := h.deckService.Get(r.Context(), deckID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, deck)
}

func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	if !h.requireEdit(w, r, deckID) {
		return
	}

	var req UpdateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	deck, err := h.deckService.Update(r.Context(), deckID, service.UpdateDeckInput{
		Title:      req.Title,
		Visibility: req.Visibility,
		ShareToken: req.ShareToken,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, deck)
}
