package models

import "time"

// Event is a board-scoped activity record. Events back the activity feed
// and are broadcast to websocket subscribers of the board.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // e.g. "task.create", "board.delete"
	Message   string    `json:"message"`
	BoardID   *string   `json:"boardId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
