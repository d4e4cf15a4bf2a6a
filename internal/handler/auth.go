package handler

import (
	"net/http"
	"print3d-shop/internal/dto"
	"print3d-shop/internal/middleware"
	"print3d-shop/internal/model"
	"print3d-shop/internal/service"
	"time"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "username and password required"})
	}

	session, err := h.authService.Register(ctx, req.Username, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	setSessionCookie(c, session)
	return c.JSON(http.StatusOK, &dto.AuthResponse{Success: true, Username: session.Username})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "username and password required"})
	}

	session, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	setSessionCookie(c, session)
	return c.JSON(http.StatusOK, &dto.AuthResponse{Success: true, Username: session.Username})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	token := ""
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		token = cookie.Value
	}

	if err := h.authService.Logout(ctx, token); err != nil {
		return writeServiceError(c, err)
	}

	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, &dto.MeResponse{LoggedIn: false})
	}

	username, err := h.authService.CurrentUser(ctx, cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, &dto.MeResponse{LoggedIn: false})
	}

	return c.JSON(http.StatusOK, &dto.MeResponse{LoggedIn: true, Username: username})
}

func setSessionCookie(c echo.Context, session *model.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
}
