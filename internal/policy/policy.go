// Package policy holds the role predicates evaluated against verified token claims.
package policy

import (
	"errors"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"
	"github.com/sulakshana2003/BackEnd-R/internal/utils"
)

var (
	ErrAdminRequired = errors.New("admin access required")
	ErrAccessDenied  = errors.New("access denied")
	ErrLoginRequired = errors.New("you are not authorized to create an admin user, please login first")
	ErrAdminOnlyRole = errors.New("only admin can create another admin")
)

func IsAdmin(claims *utils.AccessClaims) bool {
	return claims != nil && entity.UserRole(claims.Role) == entity.UserRoleAdmin
}

func HasRole(claims *utils.AccessClaims, roles ...entity.UserRole) bool {
	if claims == nil {
		return false
	}
	for _, role := range roles {
		if entity.UserRole(claims.Role) == role {
			return true
		}
	}
	return false
}

// CanAssignRole decides whether the caller may create an account with role.
// Only an authenticated admin may hand out the admin role.
func CanAssignRole(claims *utils.AccessClaims, role entity.UserRole) error {
	if role != entity.UserRoleAdmin {
		return nil
	}
	if claims == nil {
		return ErrLoginRequired
	}
	if !IsAdmin(claims) {
		return ErrAdminOnlyRole
	}
	return nil
}
