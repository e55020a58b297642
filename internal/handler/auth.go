package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/config"
	"github.com/iliyamo/cinema-management/internal/repository"
	"github.com/iliyamo/cinema-management/internal/service"
	"github.com/iliyamo/cinema-management/internal/utils"
)

// AuthHandler exposes registration, login and token lifecycle.
type AuthHandler struct {
	users  *service.UserService
	tokens *repository.TokenRepo
	cfg    config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users *service.UserService, tokens *repository.TokenRepo, cfg config.Config) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, cfg: cfg}
}

// tokenPair is the login/refresh response body.
type tokenPair struct {
	AccessToken      string `json:"access_token"`
	AccessExpiresAt  string `json:"access_expires_at"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresAt string `json:"refresh_expires_at"`
}

// issueTokens mints an access/refresh pair and stores the refresh hash.
func (h *AuthHandler) issueTokens(c echo.Context, userID uint64, role string) (tokenPair, error) {
	access, err := utils.NewAccessToken(h.cfg.JWTSecret, userID, role, h.cfg.AccessTTLMin)
	if err != nil {
		return tokenPair{}, err
	}
	refresh, err := utils.NewRefreshToken(h.cfg.RefreshTTLDays)
	if err != nil {
		return tokenPair{}, err
	}
	hash := utils.HashRefreshRaw(refresh.Raw)
	if err := h.tokens.StoreRefresh(c.Request().Context(), userID, hash, refresh.Exp); err != nil {
		return tokenPair{}, err
	}
	return tokenPair{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.Exp.Format(time.RFC3339),
		RefreshToken:     refresh.Raw,
		RefreshExpiresAt: refresh.Exp.Format(time.RFC3339),
	}, nil
}

// Register handles POST /v1/auth/register. Self-registration always
// creates a USER account; elevated roles are granted by an admin.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		UserName  string `json:"user_name"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.users.Register(c.Request().Context(), service.RegisterInput{
		UserName:  body.UserName,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Password:  body.Password,
	})
	return respond(c, http.StatusCreated, res, err)
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		UserName string `json:"user_name"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	u, err := h.users.GetByUserName(c.Request().Context(), body.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, body.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}
	pair, err := h.issueTokens(c, u.ID, u.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, pair)
}

// Refresh handles POST /v1/auth/refresh. The presented refresh token is
// rotated: validated, revoked, and replaced by a fresh pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&body); err != nil || body.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "refresh_token is required")
	}
	hash := utils.HashRefreshRaw(body.RefreshToken)
	userID, err := h.tokens.ValidateRefresh(c.Request().Context(), hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusUnauthorized, "invalid refresh token")
		}
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	res, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil || !res.IsSuccessful() {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}
	if err := h.tokens.RevokeByHash(c.Request().Context(), hash); err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	u := res.Model()
	pair, err := h.issueTokens(c, u.ID, u.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, pair)
}

// Logout handles POST /v1/auth/logout: revokes every active refresh
// token of the authenticated user.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	if err := h.tokens.RevokeAllForUser(c.Request().Context(), userID); err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/auth/me: the authenticated user's own record.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	res, err := h.users.GetByID(c.Request().Context(), userID)
	return respond(c, http.StatusOK, res, err)
}
