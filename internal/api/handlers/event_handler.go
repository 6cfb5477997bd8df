package handlers

import (
	"net/http"
	"strconv"

	"github.com/isdelr/taskboard-be/internal/auth"
	"github.com/isdelr/taskboard-be/internal/models"
	"github.com/isdelr/taskboard-be/internal/services"
)

// EventHandler exposes the cross-board activity feed. Only admins may
// read it; board-scoped activity is served through the board routes.
type EventHandler struct {
	service services.EventServiceProvider
	users   services.UserServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider, users services.UserServiceProvider) *EventHandler {
	return &EventHandler{service: service, users: users}
}

// GetRecent lists the most recent events across all boards.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user.Role != models.RoleAdmin {
		http.Error(w, "admin role required", http.StatusForbidden)
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
