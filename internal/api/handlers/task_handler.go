package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/auth"
	"github.com/isdelr/taskboard-be/internal/services"
)

// TaskHandler handles HTTP requests related to tasks. Ownership is
// checked through the task's board before every operation.
type TaskHandler struct {
	service services.TaskServiceProvider
	access  services.AccessServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider, access services.AccessServiceProvider) *TaskHandler {
	return &TaskHandler{service: service, access: access}
}

func (h *TaskHandler) authorize(w http.ResponseWriter, r *http.Request, taskID string) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return false
	}

	allowed, err := h.access.CanAccessTask(r.Context(), taskID, claims.UserID)
	if err != nil {
		respondError(w, err)
		return false
	}
	if !allowed {
		respondError(w, apperr.NewForbiddenf("task %s does not belong to the authenticated user", taskID))
		return false
	}
	return true
}

// Get retrieves a single task.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.authorize(w, r, id) {
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.authorize(w, r, id) {
		return
	}

	var upd services.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), id, upd)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete removes a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.authorize(w, r, id) {
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
