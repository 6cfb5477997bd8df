package stores

import (
	"context"
	"database/sql"

	"github.com/isdelr/taskboard-be/internal/apperr"
	"github.com/isdelr/taskboard-be/internal/models"
)

// UserStore defines the credential-store contract. Lookups that miss
// return an error unwrapping to apperr.ErrNotFound.
type UserStore interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// IsUsernameTaken reports whether any user other than excludeID holds
	// the username. Pass an empty excludeID to scan all users.
	IsUsernameTaken(ctx context.Context, username, excludeID string) (bool, error)
	IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, user models.User) error
	// Update persists the fully merged entity; the merge itself happens in
	// the service layer.
	Update(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id string) error
}

// SQLUserStore is the SQLite-backed UserStore.
type SQLUserStore struct {
	db *sql.DB
}

// NewUserStore creates a new SQLUserStore.
func NewUserStore(db *sql.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

const userColumns = "id, username, email, password_hash, role, created_at"

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	return user, err
}

// GetByID retrieves a single user, password hash included. Callers strip
// the hash before anything leaves the service layer.
func (s *SQLUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, apperr.NewNotFoundf("user with id %s not found", id)
	}
	return user, err
}

// GetByUsername retrieves a single user by their unique username.
func (s *SQLUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, apperr.NewNotFoundf("user %s not found", username)
	}
	return user, err
}

// ExistsByUsernameOrEmail reports whether either value is already in use.
func (s *SQLUserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM users WHERE username = ? OR email = ?", username, email).Scan(&n)
	return n > 0, err
}

// IsUsernameTaken reports whether a different user already holds the username.
func (s *SQLUserStore) IsUsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM users WHERE username = ? AND id != ?", username, excludeID).Scan(&n)
	return n > 0, err
}

// IsEmailTaken reports whether a different user already holds the email.
func (s *SQLUserStore) IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM users WHERE email = ? AND id != ?", email, excludeID).Scan(&n)
	return n > 0, err
}

// Create inserts a new user. A uniqueness race surfaces as AlreadyExists.
func (s *SQLUserStore) Create(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash, role) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role)
	return translateConstraint(err)
}

// Update writes the merged user row.
func (s *SQLUserStore) Update(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET username = ?, email = ?, password_hash = ?, role = ? WHERE id = ?",
		user.Username, user.Email, user.PasswordHash, user.Role, user.ID)
	return translateConstraint(err)
}

// Delete removes a user from the database.
func (s *SQLUserStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}
