package middleware

import (
	"net/http"
	"strings"

	"github.com/sulakshana2003/BackEnd-R/internal/utils"

	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	JWT *utils.JWTManager
}

// Authenticate attaches verified claims when a bearer token is presented.
// Requests without an Authorization header continue anonymously.
func (m AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorization := c.Request().Header.Get("Authorization")
		if authorization == "" {
			return next(c)
		}
		token, ok := bearerToken(authorization)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid authorization format"})
		}
		if m.JWT == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
		}
		claims, err := m.JWT.ParseAccessToken(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
		}
		SetClaims(c, claims)
		return next(c)
	}
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := UserIDFromContext(c); !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
		}
		return next(c)
	}
}

func bearerToken(authorization string) (string, bool) {
	parts := strings.Split(authorization, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
