package stores

import (
	"context"
	"database/sql"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
)

// BoardStore defines the persistence contract for boards.
type BoardStore interface {
	GetByID(ctx context.Context, id string) (models.Board, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Board, error)
	Create(ctx context.Context, board models.Board) error
	Update(ctx context.Context, board models.Board) error
	// DeleteWithTasks removes the board and all of its tasks in a single
	// transaction, so no task ever outlives its board.
	DeleteWithTasks(ctx context.Context, id string) error
}

// SQLBoardStore is the SQLite-backed BoardStore.
type SQLBoardStore struct {
	db *sql.DB
}

// NewBoardStore creates a new SQLBoardStore.
func NewBoardStore(db *sql.DB) *SQLBoardStore {
	return &SQLBoardStore{db: db}
}

// GetByID retrieves a single board by its ID.
func (s *SQLBoardStore) GetByID(ctx context.Context, id string) (models.Board, error) {
	var board models.Board
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, sorted, owner_id, created_at FROM boards WHERE id = ?", id)
	err := row.Scan(&board.ID, &board.Title, &board.Sorted, &board.OwnerID, &board.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Board{}, apperr.NewNotFoundf("board with id %s not found", id)
	}
	return board, err
}

// ListByOwner retrieves all boards owned by a user, oldest first.
func (s *SQLBoardStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Board, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, sorted, owner_id, created_at FROM boards WHERE owner_id = ? ORDER BY created_at", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []models.Board
	for rows.Next() {
		var board models.Board
		if err := rows.Scan(&board.ID, &board.Title, &board.Sorted, &board.OwnerID, &board.CreatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
}

// Create inserts a new board.
func (s *SQLBoardStore) Create(ctx context.Context, board models.Board) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO boards (id, title, sorted, owner_id) VALUES (?, ?, ?, ?)",
		board.ID, board.Title, board.Sorted, board.OwnerID)
	return err
}

// Update writes the merged board row.
func (s *SQLBoardStore) Update(ctx context.Context, board models.Board) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE boards SET title = ?, sorted = ? WHERE id = ?",
		board.Title, board.Sorted, board.ID)
	return err
}

// DeleteWithTasks deletes the board's tasks and then the board itself in
// one transaction.
func (s *SQLBoardStore) DeleteWithTasks(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE board_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM boards WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}
