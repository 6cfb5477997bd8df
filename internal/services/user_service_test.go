package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
	"github.com/isdelr/taskboard-be/internal/patch"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, newFakeBoardStore())

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "pw12345678")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")

	stored := users.users[user.ID]
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "pw12345678", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw12345678")))
}

func TestRegisterRejectsBlankInput(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), newFakeBoardStore())

	for _, tc := range []struct{ username, email, password string }{
		{"", "a@x.com", "pw"},
		{"alice", "", "pw"},
		{"alice", "a@x.com", ""},
	} {
		_, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, newFakeBoardStore())

	_, err := svc.Register(context.Background(), "alice", "a@x.com", "pw12345678")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "b@x.com", "pw2")
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
	assert.Equal(t, 1, users.creates, "the colliding call must stop at the existence probe")
}

func TestAuthenticate(t *testing.T) {
	users := newFakeUserStore(models.User{
		ID: "u1", Username: "alice", Email: "a@x.com",
		PasswordHash: hashOf(t, "secret"), Role: models.RoleUser,
	})
	svc := NewUserService(users, newFakeBoardStore())

	user, err := svc.Authenticate(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Authenticate(context.Background(), "nobody", "secret")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthenticatePropagatesStorageFailures(t *testing.T) {
	users := newFakeUserStore()
	users.getByUsernameErr = apperr.NewStoragef("users table unavailable")
	svc := NewUserService(users, newFakeBoardStore())

	_, err := svc.Authenticate(context.Background(), "alice", "secret")
	assert.ErrorIs(t, err, apperr.ErrStorage, "a backend failure is not a credential problem")
	assert.NotErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestUpdateUserUsernameCollision(t *testing.T) {
	users := newFakeUserStore(
		models.User{ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: "h1"},
		models.User{ID: "u2", Username: "bob", Email: "b@x.com", PasswordHash: "h2"},
	)
	svc := NewUserService(users, newFakeBoardStore())

	_, err := svc.UpdateUser(context.Background(), "u1", UserUpdate{
		Username: patch.Some("bob"),
	})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "is already taken")
	assert.Zero(t, users.updates)
}

func TestUpdateUserUnchangedUsernameSkipsProbe(t *testing.T) {
	users := newFakeUserStore(models.User{ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: "h1"})
	svc := NewUserService(users, newFakeBoardStore())

	user, err := svc.UpdateUser(context.Background(), "u1", UserUpdate{
		Username: patch.Some("alice"),
		Email:    patch.Some(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Zero(t, users.usernameChecks, "an unchanged username needs no uniqueness probe")
	assert.Zero(t, users.emailChecks)
}

func TestUpdateUserEmptyPasswordKeepsHash(t *testing.T) {
	users := newFakeUserStore(models.User{ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: "keep-me"})
	svc := NewUserService(users, newFakeBoardStore())

	_, err := svc.UpdateUser(context.Background(), "u1", UserUpdate{
		Password: patch.Some(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "keep-me", users.users["u1"].PasswordHash)

	_, err = svc.UpdateUser(context.Background(), "u1", UserUpdate{
		Password: patch.Some("new-secret"),
	})
	require.NoError(t, err)
	stored := users.users["u1"].PasswordHash
	assert.NotEqual(t, "keep-me", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-secret")))
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), newFakeBoardStore())

	_, err := svc.UpdateUser(context.Background(), "ghost", UserUpdate{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteUserRemovesOwnedBoards(t *testing.T) {
	users := newFakeUserStore(models.User{ID: "u1", Username: "alice", Email: "a@x.com"})
	tasks := newFakeTaskStore(models.Task{ID: "t1", BoardID: "b1"})
	boards := newFakeBoardStore(
		models.Board{ID: "b1", OwnerID: "u1"},
		models.Board{ID: "b2", OwnerID: "u2"},
	)
	boards.tasks = tasks
	svc := NewUserService(users, boards)

	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))
	assert.NotContains(t, users.users, "u1")
	assert.NotContains(t, boards.boards, "b1")
	assert.NotContains(t, tasks.tasks, "t1")
	assert.Contains(t, boards.boards, "b2")
}
