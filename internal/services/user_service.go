package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
	"github.com/isdelr/taskboard-be/internal/patch"
	"github.com/isdelr/taskboard-be/internal/stores"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserUpdate is the partial-update request for a user. Absent, null and
// empty string all mean "leave the field untouched"; a non-empty value
// is applied after validation.
type UserUpdate struct {
	Username patch.Field[string] `json:"username"`
	Email    patch.Field[string] `json:"email"`
	Password patch.Field[string] `json:"password"`
}

// UserService provides business logic for accounts, including the
// merge-update contract for username, email and password.
type UserService struct {
	users  stores.UserStore
	boards stores.BoardStore
}

// NewUserService creates a new UserService.
func NewUserService(users stores.UserStore, boards stores.BoardStore) *UserService {
	return &UserService{users: users, boards: boards}
}

// GetUserByID retrieves a single user with the password hash stripped.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Register creates a new account. Username, email and password are all
// required. The existence probe gives a friendly error on the common
// path; the store's uniqueness constraint remains the authoritative
// guard when two registrations race.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return models.User{}, apperr.NewInvalidArgumentf("username can't be empty")
	}
	if email == "" {
		return models.User{}, apperr.NewInvalidArgumentf("email can't be empty")
	}
	if password == "" {
		return models.User{}, apperr.NewInvalidArgumentf("password can't be empty")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, apperr.NewAlreadyExistsf("user %s already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown usernames and
// wrong passwords fail identically so usernames can't be enumerated;
// any other lookup failure propagates with its kind intact.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.User{}, apperr.NewUnauthorizedf("invalid credentials")
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, apperr.NewUnauthorizedf("invalid credentials")
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateUser applies a partial update. A username or email that is
// non-empty and different from the current value triggers a uniqueness
// check scoped to all other users; a non-empty password is re-hashed.
// Everything else is left untouched.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd UserUpdate) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if username, ok := patch.Text(upd.Username); ok && username != user.Username {
		taken, err := s.users.IsUsernameTaken(ctx, username, id)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, apperr.NewAlreadyExistsf("username %s is already taken", username)
		}
		user.Username = username
	}

	if email, ok := patch.Text(upd.Email); ok && email != user.Email {
		taken, err := s.users.IsEmailTaken(ctx, email, id)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, apperr.NewAlreadyExistsf("email %s is already taken", email)
		}
		user.Email = email
	}

	if password, ok := patch.Text(upd.Password); ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes an account together with its boards and their
// tasks, so nothing is left owned by a user that no longer exists.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}

	boards, err := s.boards.ListByOwner(ctx, id)
	if err != nil {
		return err
	}
	for _, board := range boards {
		if err := s.boards.DeleteWithTasks(ctx, board.ID); err != nil {
			return err
		}
	}
	return s.users.Delete(ctx, id)
}
