package models

import "time"

// DeadlineLayout is the wire and storage format for task deadlines.
// Deadlines are calendar dates with no time-of-day component.
const DeadlineLayout = "2006-01-02"

// Priority is an ordinal urgency level. PriorityStandard is the default
// when a task is created without one.
type Priority string

const (
	PriorityLowest        Priority = "lowest"
	PriorityVeryLow       Priority = "very_low"
	PriorityLow           Priority = "low"
	PriorityBelowStandard Priority = "below_standard"
	PriorityStandard      Priority = "standard"
	PriorityAboveStandard Priority = "above_standard"
	PriorityElevated      Priority = "elevated"
	PriorityHigh          Priority = "high"
	PriorityVeryHigh      Priority = "very_high"
	PriorityCritical      Priority = "critical"
)

// priorities in ascending order of urgency.
var priorities = []Priority{
	PriorityLowest,
	PriorityVeryLow,
	PriorityLow,
	PriorityBelowStandard,
	PriorityStandard,
	PriorityAboveStandard,
	PriorityElevated,
	PriorityHigh,
	PriorityVeryHigh,
	PriorityCritical,
}

// ParsePriority maps a wire name to a Priority. The boolean is false for
// names outside the fixed set.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range priorities {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Ordinal returns the position of p in the urgency scale, lowest first.
func (p Priority) Ordinal() int {
	for i, q := range priorities {
		if p == q {
			return i
		}
	}
	return -1
}

// Task is a unit of work on exactly one board. Its effective owner is
// the owner of its board; tasks carry no owner pointer of their own.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	Deadline    string    `json:"deadline"`
	Finished    bool      `json:"finished"`
	BoardID     string    `json:"boardId"`
	CreatedAt   time.Time `json:"createdAt"`
}
