package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskboard-be/internal/auth"
	"github.com/isdelr/taskboard-be/internal/services"
)

// UserHandler handles HTTP requests for the authenticated user's own
// account. All routes are self-scoped: the target is always the user
// resolved from the token, never an id from the URL.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// Update applies a partial update to the authenticated user's account.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var upd services.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), claims.UserID, upd)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to update user")
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Delete permanently removes the authenticated user's account together
// with all boards and tasks they own.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	if err := h.service.DeleteUser(r.Context(), claims.UserID); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to delete user")
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
