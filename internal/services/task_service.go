package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
	"github.com/isdelr/taskboard-be/internal/patch"
	"github.com/isdelr/taskboard-be/internal/stores"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	GetTaskByID(ctx context.Context, id string) (models.Task, error)
	GetTasksForBoard(ctx context.Context, boardID string) ([]models.Task, error)
	CreateTask(ctx context.Context, boardID string, req TaskCreate) (models.Task, error)
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TaskCreate is the request for creating a task on a board. Title and
// deadline are required; priority defaults to standard when omitted.
// TimeZone is the caller's IANA zone name, used only to compute "today"
// for deadline validation.
type TaskCreate struct {
	Title       patch.Field[string] `json:"title"`
	Description patch.Field[string] `json:"description"`
	Priority    patch.Field[string] `json:"priority"`
	Deadline    patch.Field[string] `json:"deadline"`
	TimeZone    string              `json:"timeZone"`
}

// TaskUpdate is the partial-update request for a task. Finished is a
// plain boolean and is always applied; there is no "absent" state for
// it. A non-empty BoardID replaces the owning board outright.
type TaskUpdate struct {
	Title       patch.Field[string] `json:"title"`
	Description patch.Field[string] `json:"description"`
	Priority    patch.Field[string] `json:"priority"`
	Deadline    patch.Field[string] `json:"deadline"`
	Finished    bool                `json:"finished"`
	BoardID     patch.Field[string] `json:"boardId"`
	TimeZone    string              `json:"timeZone"`
}

// TaskService provides business logic for tasks, including the
// merge-update contract and deadline validation against the caller's
// time zone.
type TaskService struct {
	tasks  stores.TaskStore
	boards stores.BoardStore
	events EventServiceProvider
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks stores.TaskStore, boards stores.BoardStore, events EventServiceProvider) *TaskService {
	return &TaskService{tasks: tasks, boards: boards, events: events}
}

// validateDeadline parses a deadline and rejects dates before "today" in
// the caller's time zone. An empty zone name means UTC.
func validateDeadline(deadline, timeZone string) (string, error) {
	if timeZone == "" {
		timeZone = "UTC"
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return "", apperr.NewInvalidArgumentf("time zone %s is invalid", timeZone)
	}

	day, err := time.ParseInLocation(models.DeadlineLayout, deadline, loc)
	if err != nil {
		return "", apperr.NewInvalidArgumentf("deadline %s is invalid", deadline)
	}

	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		return "", apperr.NewInvalidArgumentf("deadline can't be before the current date")
	}
	return day.Format(models.DeadlineLayout), nil
}

// GetTaskByID retrieves a single task by its ID.
func (s *TaskService) GetTaskByID(ctx context.Context, id string) (models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// GetTasksForBoard retrieves all tasks on a board.
func (s *TaskService) GetTasksForBoard(ctx context.Context, boardID string) ([]models.Task, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	return s.tasks.ListByBoard(ctx, boardID)
}

// CreateTask creates a task on the given board. The board must exist;
// that the caller owns it has already been decided by the access check.
func (s *TaskService) CreateTask(ctx context.Context, boardID string, req TaskCreate) (models.Task, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return models.Task{}, err
	}

	if !req.Title.Present() {
		return models.Task{}, apperr.NewInvalidArgumentf("task title can't be null")
	}
	title, ok := patch.Text(req.Title)
	if !ok {
		return models.Task{}, apperr.NewInvalidArgumentf("task title can't be empty")
	}
	if err := validateTitle(title); err != nil {
		return models.Task{}, err
	}

	// Creation defaults a missing priority instead of rejecting it.
	priority := models.PriorityStandard
	if name, ok := patch.Text(req.Priority); ok {
		priority, ok = models.ParsePriority(name)
		if !ok {
			return models.Task{}, apperr.NewInvalidArgumentf("priority %s is invalid", name)
		}
	}

	rawDeadline, ok := patch.Text(req.Deadline)
	if !ok {
		return models.Task{}, apperr.NewInvalidArgumentf("deadline can't be null")
	}
	deadline, err := validateDeadline(rawDeadline, req.TimeZone)
	if err != nil {
		return models.Task{}, err
	}

	description, _ := patch.Text(req.Description)

	task := models.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Priority:    priority,
		Deadline:    deadline,
		Finished:    false,
		BoardID:     boardID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return models.Task{}, err
	}

	s.events.CreateEvent("task.create", fmt.Sprintf("Task '%s' created.", task.Title), &task.BoardID)
	return task, nil
}

// UpdateTask applies a partial update to a task. Absent, null and empty
// values leave their field untouched; Finished is always overwritten. A
// supplied board id replaces the owning board as a whole. The existence
// of the destination board is verified, but not that it belongs to the
// caller: the access check that admitted this call ran against the task,
// and ownership decisions stay in that one place.
func (s *TaskService) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if title, ok := patch.Text(upd.Title); ok {
		if err := validateTitle(title); err != nil {
			return models.Task{}, err
		}
		task.Title = title
	}
	if description, ok := patch.Text(upd.Description); ok {
		task.Description = description
	}
	if name, ok := patch.Text(upd.Priority); ok {
		priority, ok := models.ParsePriority(name)
		if !ok {
			return models.Task{}, apperr.NewInvalidArgumentf("priority %s is invalid", name)
		}
		task.Priority = priority
	}
	if rawDeadline, ok := patch.Text(upd.Deadline); ok {
		deadline, err := validateDeadline(rawDeadline, upd.TimeZone)
		if err != nil {
			return models.Task{}, err
		}
		task.Deadline = deadline
	}
	if boardID, ok := patch.Text(upd.BoardID); ok && boardID != task.BoardID {
		if _, err := s.boards.GetByID(ctx, boardID); err != nil {
			return models.Task{}, err
		}
		task.BoardID = boardID
	}
	task.Finished = upd.Finished

	if err := s.tasks.Update(ctx, task); err != nil {
		return models.Task{}, err
	}

	s.events.CreateEvent("task.update", fmt.Sprintf("Task '%s' updated.", task.Title), &task.BoardID)
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.events.CreateEvent("task.delete", fmt.Sprintf("Task '%s' deleted.", task.Title), &task.BoardID)
	return nil
}
