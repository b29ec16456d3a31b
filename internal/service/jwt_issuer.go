package service

import (
	"github.com/sulakshana2003/BackEnd-R/internal/entity"
	"github.com/sulakshana2003/BackEnd-R/internal/utils"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(user entity.User) (string, error) {
	if j.Manager == nil {
		return "", utils.ErrInvalidToken
	}
	token, _, err := j.Manager.IssueAccessToken(ClaimsForUser(user))
	return token, err
}

// ClaimsForUser maps a user record to the identity claims carried by its token.
func ClaimsForUser(user entity.User) utils.AccessClaims {
	return utils.AccessClaims{
		UserID: user.ID.String(),
		Role:   string(user.Role),
		Name:   user.Name,
		Email:  deref(user.Email),
		Phone:  deref(user.Phone),
		Image:  deref(user.Image),
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
