package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicreate/mall-api/internal/models"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	return &AuthHandler{
		DB:            initTestDB(t),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestRegister(t *testing.T) {
	h := newAuthHandler(t)

	rec, c := newContext(t, http.MethodPost, "/api/v1/register", map[string]string{
		"username": "test_user", "password": "password",
	})
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "test_user", user.Username)
	assert.Equal(t, "user", user.Role)

	var stored models.User
	require.NoError(t, h.DB.Where("username = ?", "test_user").First(&stored).Error)
	assert.NotEqual(t, "password", stored.PasswordHash)
}

func TestRegisterDuplicate(t *testing.T) {
	h := newAuthHandler(t)

	_, c := newContext(t, http.MethodPost, "/api/v1/register", map[string]string{
		"username": "test_user", "password": "password",
	})
	require.NoError(t, h.Register(c))

	_, c = newContext(t, http.MethodPost, "/api/v1/register", map[string]string{
		"username": "test_user", "password": "other",
	})
	err := h.Register(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestLoginSetsCookies(t *testing.T) {
	h := newAuthHandler(t)

	_, c := newContext(t, http.MethodPost, "/api/v1/register", map[string]string{
		"username": "test_user", "password": "password",
	})
	require.NoError(t, h.Register(c))

	rec, c := newContext(t, http.MethodPost, "/api/v1/login", map[string]string{
		"username": "test_user", "password": "password",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	names := make(map[string]bool, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = ck.Value != ""
	}
	assert.True(t, names["accessToken"])
	assert.True(t, names["refreshToken"])

	var count int64
	require.NoError(t, h.DB.Model(&models.RefreshToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginWrongPassword(t *testing.T) {
	h := newAuthHandler(t)

	_, c := newContext(t, http.MethodPost, "/api/v1/register", map[string]string{
		"username": "test_user", "password": "password",
	})
	require.NoError(t, h.Register(c))

	_, c = newContext(t, http.MethodPost, "/api/v1/login", map[string]string{
		"username": "test_user", "password": "wrong",
	})
	err := h.Login(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
