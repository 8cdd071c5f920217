package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/dicreate/mall-api/internal/cart"
	"github.com/dicreate/mall-api/internal/events"
	"github.com/dicreate/mall-api/internal/hash"
	"github.com/dicreate/mall-api/internal/logging"
	"github.com/dicreate/mall-api/internal/models"
	"github.com/dicreate/mall-api/internal/service/token"
)

type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      Publisher
	Carts         *cart.Manager
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password required")
	}

	var existing models.User
	if err := h.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_failed", "reason", "db error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "reason", "hash error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot hash password")
	}

	user := models.User{Username: req.Username, PasswordHash: pwHash, Role: "user"}
	if err := h.DB.Create(&user).Error; err != nil {
		l.Error("register_failed", "reason", "db error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	Publish(c, h.Producer, events.TopicUserEvents, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})
	l.Info("register_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	access, err := token.SignAccessToken(user.ID, user.Role, h.JWTSecret)
	if err != nil {
		l.Error("login_failed", "reason", "sign access", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}
	refresh, err := token.SignRefreshToken(user.ID, user.Role, h.RefreshSecret)
	if err != nil {
		l.Error("login_failed", "reason", "sign refresh", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}
	if err := token.SaveRefreshToken(h.DB, refresh, user.ID); err != nil {
		l.Error("login_failed", "reason", "save refresh", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save token")
	}

	c.SetCookie(token.CreateCookie("accessToken", access, "/", time.Now().Add(token.AccessTTL)))
	c.SetCookie(token.CreateCookie("refreshToken", refresh, "/", time.Now().Add(token.RefreshTTL)))

	Publish(c, h.Producer, events.TopicUserEvents, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})
	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, user)
}

// LogOut revokes the refresh token, expires the cookies and empties the
// user's cart.
func (h *AuthHandler) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if rfCookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.DB.Model(&models.RefreshToken{}).
			Where("token = ?", rfCookie.Value).
			Update("revoked", true).Error; err != nil {
			l.Error("logout_revoke_failed", "error", err)
		}
	}

	if userID, ok := c.Get("userID").(uint); ok && h.Carts != nil {
		h.Carts.For(userID).Clear()
		Publish(c, h.Producer, events.TopicUserEvents, map[string]any{
			"type":   "user_logged_out",
			"userID": userID,
		})
	}

	expired := time.Now().Add(-time.Hour)
	c.SetCookie(token.CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(token.CreateCookie("refreshToken", "", "/", expired))

	l.Info("logout_success")
	return c.NoContent(http.StatusNoContent)
}
