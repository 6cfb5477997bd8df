package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/auth"
	"github.com/isdelr/taskboard-be/internal/services"
)

// BoardHandler handles HTTP requests related to boards. Every route that
// names a board id runs the ownership check first; a board that exists
// but belongs to someone else yields 403, a missing board 404.
type BoardHandler struct {
	service services.BoardServiceProvider
	tasks   services.TaskServiceProvider
	events  services.EventServiceProvider
	access  services.AccessServiceProvider
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(service services.BoardServiceProvider, tasks services.TaskServiceProvider, events services.EventServiceProvider, access services.AccessServiceProvider) *BoardHandler {
	return &BoardHandler{service: service, tasks: tasks, events: events, access: access}
}

// authorize resolves the caller and verifies board ownership. It writes
// the error response itself when the check does not pass.
func (h *BoardHandler) authorize(w http.ResponseWriter, r *http.Request, boardID string) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return nil, false
	}

	allowed, err := h.access.CanAccessBoard(r.Context(), boardID, claims.UserID)
	if err != nil {
		respondError(w, err)
		return nil, false
	}
	if !allowed {
		respondError(w, apperr.NewForbiddenf("board %s does not belong to the authenticated user", boardID))
		return nil, false
	}
	return claims, true
}

// GetAll lists the authenticated user's boards.
func (h *BoardHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	boards, err := h.service.GetBoardsForUser(r.Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list boards")
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

// Create creates a new board owned by the authenticated user.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var req services.BoardCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	board, err := h.service.CreateBoard(r.Context(), claims.UserID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, board)
}

// Get retrieves a single board.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.authorize(w, r, id); !ok {
		return
	}

	board, err := h.service.GetBoardByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// Update applies a partial update to a board.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.authorize(w, r, id); !ok {
		return
	}

	var upd services.BoardUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	board, err := h.service.UpdateBoard(r.Context(), id, upd)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// Delete removes a board and all of its tasks.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.authorize(w, r, id); !ok {
		return
	}

	if err := h.service.DeleteBoard(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTasks lists the tasks on a board.
func (h *BoardHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.authorize(w, r, id); !ok {
		return
	}

	tasks, err := h.tasks.GetTasksForBoard(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task on a board.
func (h *BoardHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.authorize(w, r, id); !ok {
		return
	}

	var req services.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// GetEvents lists recent activity on a board.
func (h *BoardHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.authorize(w, r, id); !ok {
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.events.GetEventsForBoard(id, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
