package services

import (
	"context"
	"strings"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/stores"
)

// AccessServiceProvider defines the interface for ownership checks.
type AccessServiceProvider interface {
	CanAccessBoard(ctx context.Context, boardID, userID string) (bool, error)
	CanAccessTask(ctx context.Context, taskID, userID string) (bool, error)
}

// AccessService decides whether a caller may touch a resource by walking
// the ownership chain Task -> Board -> User. It performs pure reads and
// must be invoked before any mutating operation on a scoped resource;
// the mutating services do not re-derive ownership themselves.
//
// A lookup miss is an error (the resource does not exist), while "exists
// but belongs to someone else" is the legitimate result false. Handlers
// map the former to 404 and the latter to 403 and must not conflate them.
type AccessService struct {
	boards stores.BoardStore
	tasks  stores.TaskStore
}

// NewAccessService creates a new AccessService.
func NewAccessService(boards stores.BoardStore, tasks stores.TaskStore) *AccessService {
	return &AccessService{boards: boards, tasks: tasks}
}

// CanAccessBoard reports whether the user owns the board. Blank ids fail
// with InvalidArgument before any store call.
func (s *AccessService) CanAccessBoard(ctx context.Context, boardID, userID string) (bool, error) {
	if strings.TrimSpace(boardID) == "" {
		return false, apperr.NewInvalidArgumentf("board id can't be null")
	}
	if strings.TrimSpace(userID) == "" {
		return false, apperr.NewInvalidArgumentf("user id can't be null")
	}

	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return false, err
	}
	return board.OwnerID == userID, nil
}

// CanAccessTask reports whether the user owns the board the task sits on.
func (s *AccessService) CanAccessTask(ctx context.Context, taskID, userID string) (bool, error) {
	if strings.TrimSpace(taskID) == "" {
		return false, apperr.NewInvalidArgumentf("task id can't be null")
	}
	if strings.TrimSpace(userID) == "" {
		return false, apperr.NewInvalidArgumentf("user id can't be null")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return false, err
	}
	return s.CanAccessBoard(ctx, task.BoardID, userID)
}
