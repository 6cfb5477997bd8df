package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
)

func TestCanAccessBoardOwnership(t *testing.T) {
	boards := newFakeBoardStore(models.Board{ID: "b1", Title: "Chores", OwnerID: "u1"})
	svc := NewAccessService(boards, newFakeTaskStore())

	allowed, err := svc.CanAccessBoard(context.Background(), "b1", "u1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.CanAccessBoard(context.Background(), "b1", "u2")
	require.NoError(t, err)
	assert.False(t, allowed, "another user's board must yield false, not an error")
}

func TestCanAccessBoardNotFound(t *testing.T) {
	svc := NewAccessService(newFakeBoardStore(), newFakeTaskStore())

	_, err := svc.CanAccessBoard(context.Background(), "missing", "u1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCanAccessBlankIDsFailBeforeStore(t *testing.T) {
	boards := newFakeBoardStore()
	tasks := newFakeTaskStore()
	svc := NewAccessService(boards, tasks)

	for _, ids := range [][2]string{{"", "u1"}, {"b1", ""}, {"  ", "u1"}} {
		_, err := svc.CanAccessBoard(context.Background(), ids[0], ids[1])
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "can't be null")

		_, err = svc.CanAccessTask(context.Background(), ids[0], ids[1])
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	}

	assert.Zero(t, boards.getCalls, "invalid ids must not reach the board store")
	assert.Zero(t, tasks.getCalls, "invalid ids must not reach the task store")
}

func TestCanAccessTaskWalksChain(t *testing.T) {
	boards := newFakeBoardStore(models.Board{ID: "b1", OwnerID: "u1"})
	tasks := newFakeTaskStore(models.Task{ID: "t1", BoardID: "b1"})
	svc := NewAccessService(boards, tasks)

	// The task decision must equal the decision on its board, for the
	// owner and for a stranger alike.
	for _, user := range []string{"u1", "u2"} {
		viaTask, err := svc.CanAccessTask(context.Background(), "t1", user)
		require.NoError(t, err)
		viaBoard, err := svc.CanAccessBoard(context.Background(), "b1", user)
		require.NoError(t, err)
		assert.Equal(t, viaBoard, viaTask)
	}
}

func TestCanAccessTaskNotFound(t *testing.T) {
	svc := NewAccessService(newFakeBoardStore(), newFakeTaskStore())

	_, err := svc.CanAccessTask(context.Background(), "missing", "u1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
