package services

import (
	"context"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
)

// In-memory store fakes. They count invocations so tests can assert
// that validation failures happen before any store call.

type fakeUserStore struct {
	users map[string]models.User

	// When set, GetByUsername fails with this error.
	getByUsernameErr error

	getCalls       int
	existsCalls    int
	usernameChecks int
	emailChecks    int
	creates        int
	updates        int
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[string]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	f.getCalls++
	u, ok := f.users[id]
	if !ok {
		return models.User{}, apperr.NewNotFoundf("user with id %s not found", id)
	}
	return u, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if f.getByUsernameErr != nil {
		return models.User{}, f.getByUsernameErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperr.NewNotFoundf("user %s not found", username)
}

func (f *fakeUserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	f.existsCalls++
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) IsUsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	f.usernameChecks++
	for _, u := range f.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	f.emailChecks++
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(ctx context.Context, user models.User) error {
	f.creates++
	for _, u := range f.users {
		if u.Username == user.Username {
			return apperr.NewAlreadyExistsf("username is already taken")
		}
		if u.Email == user.Email {
			return apperr.NewAlreadyExistsf("email is already taken")
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Update(ctx context.Context, user models.User) error {
	f.updates++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeBoardStore struct {
	boards map[string]models.Board
	tasks  *fakeTaskStore // for cascade deletes; may be nil

	getCalls int
	creates  int
	updates  int
	deletes  int
}

func newFakeBoardStore(boards ...models.Board) *fakeBoardStore {
	f := &fakeBoardStore{boards: make(map[string]models.Board)}
	for _, b := range boards {
		f.boards[b.ID] = b
	}
	return f
}

func (f *fakeBoardStore) GetByID(ctx context.Context, id string) (models.Board, error) {
	f.getCalls++
	b, ok := f.boards[id]
	if !ok {
		return models.Board{}, apperr.NewNotFoundf("board with id %s not found", id)
	}
	return b, nil
}

func (f *fakeBoardStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Board, error) {
	var boards []models.Board
	for _, b := range f.boards {
		if b.OwnerID == ownerID {
			boards = append(boards, b)
		}
	}
	return boards, nil
}

func (f *fakeBoardStore) Create(ctx context.Context, board models.Board) error {
	f.creates++
	f.boards[board.ID] = board
	return nil
}

func (f *fakeBoardStore) Update(ctx context.Context, board models.Board) error {
	f.updates++
	f.boards[board.ID] = board
	return nil
}

func (f *fakeBoardStore) DeleteWithTasks(ctx context.Context, id string) error {
	f.deletes++
	delete(f.boards, id)
	if f.tasks != nil {
		for taskID, t := range f.tasks.tasks {
			if t.BoardID == id {
				delete(f.tasks.tasks, taskID)
			}
		}
	}
	return nil
}

type fakeTaskStore struct {
	tasks map[string]models.Task

	getCalls int
	creates  int
	updates  int
	deletes  int
}

func newFakeTaskStore(tasks ...models.Task) *fakeTaskStore {
	f := &fakeTaskStore{tasks: make(map[string]models.Task)}
	for _, t := range tasks {
		f.tasks[t.ID] = t
	}
	return f
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id string) (models.Task, error) {
	f.getCalls++
	t, ok := f.tasks[id]
	if !ok {
		return models.Task{}, apperr.NewNotFoundf("task with id %s not found", id)
	}
	return t, nil
}

func (f *fakeTaskStore) ListByBoard(ctx context.Context, boardID string) ([]models.Task, error) {
	var tasks []models.Task
	for _, t := range f.tasks {
		if t.BoardID == boardID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (f *fakeTaskStore) ListOverdue(ctx context.Context, date string) ([]models.Task, error) {
	var tasks []models.Task
	for _, t := range f.tasks {
		if !t.Finished && t.Deadline < date {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (f *fakeTaskStore) Create(ctx context.Context, task models.Task) error {
	f.creates++
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) Update(ctx context.Context, task models.Task) error {
	f.updates++
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id string) error {
	f.deletes++
	delete(f.tasks, id)
	return nil
}

type fakeEvents struct {
	types []string
}

func (f *fakeEvents) CreateEvent(eventType, message string, boardID *string) error {
	f.types = append(f.types, eventType)
	return nil
}

func (f *fakeEvents) GetRecentEvents(limit int) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeEvents) GetEventsForBoard(boardID string, limit int) ([]models.Event, error) {
	return nil, nil
}
