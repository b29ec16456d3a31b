package middleware

import (
	"github.com/sulakshana2003/BackEnd-R/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextClaimsKey = "auth_claims"
	contextUserIDKey = "auth_user_id"
)

func SetClaims(c echo.Context, claims *utils.AccessClaims) {
	c.Set(contextClaimsKey, claims)
	if userID, err := uuid.Parse(claims.UserID); err == nil {
		c.Set(contextUserIDKey, userID)
	}
}

// ClaimsFromContext returns nil for anonymous requests.
func ClaimsFromContext(c echo.Context) *utils.AccessClaims {
	claims, _ := c.Get(contextClaimsKey).(*utils.AccessClaims)
	return claims
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
