package token

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dicreate/mall-api/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestService(t *testing.T) *TokenService {
	return &TokenService{
		DB:            initTestDB(t),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestSignAccessTokenClaims(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	raw, err := SignAccessToken(42, "admin", svc.JWTSecret)
	require.NoError(t, err)

	token, err := jwt.Parse(raw, func(j *jwt.Token) (interface{}, error) { return svc.JWTSecret, nil })
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestRotateToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	refresh, err := SignRefreshToken(1, "user", svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(svc.DB, refresh, 1))

	access, newRefresh, err := svc.RotateToken(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
	assert.NotEqual(t, refresh, newRefresh)
}

func TestRotateRejectsRevoked(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	refresh, err := SignRefreshToken(1, "user", svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(svc.DB, refresh, 1))
	require.NoError(t, svc.RevokeRefresh(refresh))

	_, _, err = svc.RotateToken(refresh)
	require.Error(t, err)
}

func TestRotateRejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	access, err := SignAccessToken(1, "user", svc.RefreshSecret)
	require.NoError(t, err)

	// signed with the right secret but missing the refresh type claim
	_, _, err = svc.RotateToken(access)
	require.Error(t, err)
}

func TestRotateRejectsUnknownToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	refresh, err := SignRefreshToken(1, "user", svc.RefreshSecret)
	require.NoError(t, err)

	// never saved, so the db lookup fails
	_, _, err = svc.RotateToken(refresh)
	require.Error(t, err)
}
