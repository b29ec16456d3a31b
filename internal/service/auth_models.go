package service

import "github.com/sulakshana2003/BackEnd-R/internal/entity"

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     entity.UserRole
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress *string
}

type ResetPasswordInput struct {
	Email       string
	Code        string
	NewPassword string
}

type UpdateProfileInput struct {
	Name  string
	Phone string
}
