package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
	"github.com/isdelr/taskboard-be/internal/patch"
	"github.com/isdelr/taskboard-be/internal/stores"
)

// BoardServiceProvider defines the interface for board services.
type BoardServiceProvider interface {
	GetBoardByID(ctx context.Context, id string) (models.Board, error)
	GetBoardsForUser(ctx context.Context, ownerID string) ([]models.Board, error)
	CreateBoard(ctx context.Context, ownerID string, req BoardCreate) (models.Board, error)
	UpdateBoard(ctx context.Context, id string, upd BoardUpdate) (models.Board, error)
	DeleteBoard(ctx context.Context, id string) error
}

// BoardCreate is the request for creating a board. Creation is strict:
// a missing or empty title is rejected, with the error distinguishing
// the two cases.
type BoardCreate struct {
	Title  patch.Field[string] `json:"title"`
	Sorted patch.Field[bool]   `json:"sorted"`
}

// BoardUpdate is the partial-update request for a board. Updates are
// forgiving: absent, null and empty title all mean "leave it unchanged".
type BoardUpdate struct {
	Title  patch.Field[string] `json:"title"`
	Sorted patch.Field[bool]   `json:"sorted"`
}

// BoardService provides business logic for boards, including the
// merge-update contract and the cascading delete that keeps tasks from
// outliving their board.
type BoardService struct {
	boards stores.BoardStore
	tasks  stores.TaskStore
	events EventServiceProvider
}

// NewBoardService creates a new BoardService.
func NewBoardService(boards stores.BoardStore, tasks stores.TaskStore, events EventServiceProvider) *BoardService {
	return &BoardService{boards: boards, tasks: tasks, events: events}
}

func validateTitle(title string) error {
	if len(title) > models.MaxTitleLength {
		return apperr.NewInvalidArgumentf("title can't be longer than %d characters", models.MaxTitleLength)
	}
	return nil
}

// GetBoardByID retrieves a single board by its ID.
func (s *BoardService) GetBoardByID(ctx context.Context, id string) (models.Board, error) {
	return s.boards.GetByID(ctx, id)
}

// GetBoardsForUser retrieves all boards owned by a user.
func (s *BoardService) GetBoardsForUser(ctx context.Context, ownerID string) ([]models.Board, error) {
	return s.boards.ListByOwner(ctx, ownerID)
}

// CreateBoard creates a board owned by the given user.
func (s *BoardService) CreateBoard(ctx context.Context, ownerID string, req BoardCreate) (models.Board, error) {
	if !req.Title.Present() {
		return models.Board{}, apperr.NewInvalidArgumentf("board title can't be null")
	}
	title, ok := patch.Text(req.Title)
	if !ok {
		return models.Board{}, apperr.NewInvalidArgumentf("board title can't be empty")
	}
	if err := validateTitle(title); err != nil {
		return models.Board{}, err
	}

	board := models.Board{
		ID:      uuid.New().String(),
		Title:   title,
		Sorted:  req.Sorted.Value(),
		OwnerID: ownerID,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return models.Board{}, err
	}

	s.events.CreateEvent("board.create", fmt.Sprintf("Board '%s' created.", board.Title), &board.ID)
	return board, nil
}

// UpdateBoard applies a partial update to a board.
func (s *BoardService) UpdateBoard(ctx context.Context, id string, upd BoardUpdate) (models.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return models.Board{}, err
	}

	if title, ok := patch.Text(upd.Title); ok {
		if err := validateTitle(title); err != nil {
			return models.Board{}, err
		}
		board.Title = title
	}
	if upd.Sorted.Present() {
		board.Sorted = upd.Sorted.Value()
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return models.Board{}, err
	}

	s.events.CreateEvent("board.update", fmt.Sprintf("Board '%s' updated.", board.Title), &board.ID)
	return board, nil
}

// DeleteBoard removes a board and all of its tasks. The store performs
// both deletes in one transaction so no orphaned task can survive.
func (s *BoardService) DeleteBoard(ctx context.Context, id string) error {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.boards.DeleteWithTasks(ctx, id); err != nil {
		return err
	}

	s.events.CreateEvent("board.delete", fmt.Sprintf("Board '%s' deleted.", board.Title), nil)
	return nil
}
