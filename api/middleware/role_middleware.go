package middleware

import (
	"net/http"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"
	"github.com/sulakshana2003/BackEnd-R/internal/policy"

	"github.com/labstack/echo/v4"
)

func IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !policy.IsAdmin(ClaimsFromContext(c)) {
				return c.JSON(http.StatusForbidden, map[string]string{"message": policy.ErrAdminRequired.Error()})
			}
			return next(c)
		}
	}
}

func HasRole(roles ...entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !policy.HasRole(ClaimsFromContext(c), roles...) {
				return c.JSON(http.StatusForbidden, map[string]string{"message": policy.ErrAccessDenied.Error()})
			}
			return next(c)
		}
	}
}
