// Package stores holds the persistence contracts for users, boards and
// tasks, plus their SQLite implementations. Services depend only on the
// interfaces; tests substitute in-memory fakes.
package stores

import (
	"errors"
	"strings"

	sqlite "modernc.org/sqlite"

	"github.com/isdelr/taskboard-be/internal/apperr"
)

// SQLITE_CONSTRAINT_UNIQUE. A violation reaching the store means a
// concurrent write slipped past a service-level pre-check; the constraint
// is the authoritative uniqueness guard.
const sqliteConstraintUnique = 2067

// translateConstraint maps a sqlite UNIQUE violation to the matching
// AlreadyExists kind, deriving the colliding field from the driver's
// message when possible. Other errors pass through untouched.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code() != sqliteConstraintUnique {
		return err
	}
	msg := se.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return apperr.NewAlreadyExistsf("username is already taken")
	case strings.Contains(msg, "users.email"):
		return apperr.NewAlreadyExistsf("email is already taken")
	default:
		return apperr.NewAlreadyExistsf("resource already exists")
	}
}
