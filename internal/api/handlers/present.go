package handlers

import (
	"log"
	"net/http"

	"github.com/alex/deckshare/internal/api/middleware"
	"github.com/alex/deckshare/internal/service"
	"github.com/alex/deckshare/internal/websocket"
	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin allow-list is handled by the CORS layer
	},
}

// PresentHandler upgrades an authorized caller into a live presentation
// session. The same view policy as GET /decks/{id} applies: owners,
// public decks, share-token holders, and allow-listed viewers get in.
type PresentHandler struct {
	hub           *websocket.Hub
	accessService *service.AccessService
}

func NewPresentHandler(hub *websocket.Hub, accessService *service.AccessService) *PresentHandler {
	return &PresentHandler{
		hub:           hub,
		accessService: accessService,
	}
}

func (h *PresentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deckID, ok := deckIDParam(r)
	if !ok {
		respondErrorMessage(w, http.StatusBadRequest, "invalid deck id")
		return
	}

	var callerID *uuid.UUID
	if id, ok := middleware.GetUserID(r.Context()); ok {
		callerID = &id
	}
	shareToken := r.URL.Query().Get("token")

	allowed, err := h.accessService.CanViewDeck(r.Context(), deckID, callerID, shareToken)
	if err != nil {
		respondError(w, err)
		return
	}
	if !allowed {
		if callerID != nil {
			respondErrorMessage(w, http.StatusForbidden, "no view access")
		} else {
			respondErrorMessage(w, http.StatusUnauthorized, "authentication or share token required")
		}
		return
	}

	presenter := false
	if callerID != nil {
		presenter, err = h.accessService.CanEditDeck(r.Context(), deckID, *callerID)
		if err != nil {
			respondError(w, err)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [PresentHandler] websocket upgrade: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, deckID, callerID, presenter)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
