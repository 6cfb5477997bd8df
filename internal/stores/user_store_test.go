package stores

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/database"
	"github.com/isdelr/taskboard-be/internal/models"
)

func newTestStore(t *testing.T) *SQLUserStore {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewUserStore(db)
}

func TestUserStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.User{
		ID: "u1", Username: "alice", Email: "a@x.com",
		PasswordHash: "hash", Role: models.RoleUser,
	}
	require.NoError(t, store.Create(ctx, user))

	got, err := store.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestUserStoreNotFoundKind(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

// The UNIQUE constraint is the authoritative uniqueness guard: even when
// a caller skips the service pre-check, the violation must come back as
// AlreadyExists naming the colliding field.
func TestUserStoreUniqueConstraintTranslation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, models.User{
		ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser,
	}))

	err := store.Create(ctx, models.User{
		ID: "u2", Username: "alice", Email: "b@x.com", PasswordHash: "h", Role: models.RoleUser,
	})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "username")

	err = store.Create(ctx, models.User{
		ID: "u3", Username: "carol", Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser,
	})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "email")
}

func TestUserStoreTakenChecksExcludeSelf(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, models.User{
		ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser,
	}))

	taken, err := store.IsUsernameTaken(ctx, "alice", "u1")
	require.NoError(t, err)
	assert.False(t, taken, "a user never collides with themselves")

	taken, err = store.IsUsernameTaken(ctx, "alice", "u2")
	require.NoError(t, err)
	assert.True(t, taken)

	exists, err := store.ExistsByUsernameOrEmail(ctx, "nobody", "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
