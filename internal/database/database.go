package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
// Username and email uniqueness is enforced here; the service-level
// pre-checks only exist for friendlier errors, the constraint is the
// authoritative guard. Cascade deletion of tasks is done in code, not
// via ON DELETE CASCADE, so the invariant is enforced where it is
// testable.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS boards (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		sorted INTEGER NOT NULL DEFAULT 0,
		owner_id TEXT NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'standard',
		deadline TEXT NOT NULL, -- calendar date, YYYY-MM-DD
		finished INTEGER NOT NULL DEFAULT 0,
		board_id TEXT NOT NULL REFERENCES boards(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		board_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_boards_owner ON boards(owner_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_board ON tasks(board_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(deadline) WHERE finished = 0;
	`
	_, err := db.Exec(sqlStmt)
	return err
}
