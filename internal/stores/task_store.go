package stores

import (
	"context"
	"database/sql"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
)

// TaskStore defines the persistence contract for tasks.
type TaskStore interface {
	GetByID(ctx context.Context, id string) (models.Task, error)
	ListByBoard(ctx context.Context, boardID string) ([]models.Task, error)
	// ListOverdue returns unfinished tasks whose deadline is strictly
	// before the given calendar date (models.DeadlineLayout).
	ListOverdue(ctx context.Context, date string) ([]models.Task, error)
	Create(ctx context.Context, task models.Task) error
	Update(ctx context.Context, task models.Task) error
	Delete(ctx context.Context, id string) error
}

// SQLTaskStore is the SQLite-backed TaskStore.
type SQLTaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a new SQLTaskStore.
func NewTaskStore(db *sql.DB) *SQLTaskStore {
	return &SQLTaskStore{db: db}
}

const taskColumns = "id, title, description, priority, deadline, finished, board_id, created_at"

func scanTask(scan func(dest ...any) error) (models.Task, error) {
	var task models.Task
	err := scan(&task.ID, &task.Title, &task.Description, &task.Priority,
		&task.Deadline, &task.Finished, &task.BoardID, &task.CreatedAt)
	return task, err
}

// GetByID retrieves a single task by its ID.
func (s *SQLTaskStore) GetByID(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return models.Task{}, apperr.NewNotFoundf("task with id %s not found", id)
	}
	return task, err
}

// ListByBoard retrieves all tasks on a board, oldest first.
func (s *SQLTaskStore) ListByBoard(ctx context.Context, boardID string) ([]models.Task, error) {
	return s.list(ctx, "SELECT "+taskColumns+" FROM tasks WHERE board_id = ? ORDER BY created_at", boardID)
}

// ListOverdue retrieves unfinished tasks with a deadline before date.
// Deadlines are ISO dates, so lexicographic comparison is correct.
func (s *SQLTaskStore) ListOverdue(ctx context.Context, date string) ([]models.Task, error) {
	return s.list(ctx, "SELECT "+taskColumns+" FROM tasks WHERE finished = 0 AND deadline < ?", date)
}

func (s *SQLTaskStore) list(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Create inserts a new task.
func (s *SQLTaskStore) Create(ctx context.Context, task models.Task) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks (id, title, description, priority, deadline, finished, board_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.Title, task.Description, task.Priority, task.Deadline, task.Finished, task.BoardID)
	return err
}

// Update writes the merged task row, including the board pointer.
func (s *SQLTaskStore) Update(ctx context.Context, task models.Task) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, priority = ?, deadline = ?, finished = ?, board_id = ? WHERE id = ?",
		task.Title, task.Description, task.Priority, task.Deadline, task.Finished, task.BoardID, task.ID)
	return err
}

// Delete removes a task from the database.
func (s *SQLTaskStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	return err
}
