package middleware

import (
	"net/http"
	"print3d-shop/internal/dto"
	"print3d-shop/internal/service"

	"github.com/labstack/echo/v4"
)

const SessionCookie = "session_token"

// UsernameKey is where RequireAuth stores the resolved username in the
// echo context.
const UsernameKey = "username"

// RequireAuth resolves the session cookie to a username and rejects the
// request with 401 when there is no valid session.
func RequireAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, &dto.ErrorResponse{Error: "not logged in"})
			}

			username, err := authService.CurrentUser(c.Request().Context(), cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, &dto.ErrorResponse{Error: "not logged in"})
			}

			c.Set(UsernameKey, username)
			return next(c)
		}
	}
}
