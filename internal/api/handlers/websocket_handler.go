package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/auth"
	"github.com/isdelr/taskboard-be/internal/services"
	ws "github.com/isdelr/taskboard-be/internal/websocket"
)

// WebSocketHandler upgrades HTTP connections and subscribes them to a
// board's activity feed. The ownership check runs before the upgrade so
// an unauthorized caller never reaches the hub.
type WebSocketHandler struct {
	hub    *ws.Hub
	access services.AccessServiceProvider
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, access services.AccessServiceProvider) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, access: access}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request for /ws/boards/{id}.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	boardID := chi.URLParam(r, "id")
	allowed, err := h.access.CanAccessBoard(r.Context(), boardID, claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !allowed {
		respondError(w, apperr.NewForbiddenf("board %s does not belong to the authenticated user", boardID))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, boardID)
	h.hub.Register <- client

	go client.WritePump()
	go func() {
		// The feed is one-way; inbound messages are drained and ignored.
		client.ReadPump(nil)
		h.hub.Unregister <- client
	}()
}
