package models

import "time"

// MaxTitleLength bounds board and task titles.
const MaxTitleLength = 120

// Board is a named collection of tasks owned by exactly one user.
// Deleting a board deletes all of its tasks; a task never outlives
// its board.
type Board struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Sorted    bool      `json:"sorted"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
