package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/taskboard-be/internal/auth"
	"github.com/isdelr/taskboard-be/internal/config"
	"github.com/isdelr/taskboard-be/internal/models"
	"github.com/isdelr/taskboard-be/internal/services"
)

type stubUserService struct {
	user models.User
}

func (s *stubUserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return s.user, nil
}

func (s *stubUserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	return s.user, nil
}

func (s *stubUserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	return s.user, nil
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, upd services.UserUpdate) (models.User, error) {
	return s.user, nil
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	return nil
}

func TestLoginCookieTracksTokenTTL(t *testing.T) {
	cfg := &config.Config{TokenTTL: 2 * time.Hour, Env: "development"}
	tokens := auth.NewTokenService("test-secret", cfg.TokenTTL)
	h := NewAuthHandler(&stubUserService{user: models.User{ID: "u1", Username: "alice"}}, tokens, cfg)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"pw"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the token cookie")
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "no Secure flag outside production")

	wantExpiry := time.Now().Add(cfg.TokenTTL)
	assert.WithinDuration(t, wantExpiry, cookie.Expires, time.Minute,
		"cookie lifetime must follow the configured token TTL")

	claims, err := tokens.Validate(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}
