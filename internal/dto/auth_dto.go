package dto

import (
	"encoding/json"
	"time"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=customer cashier waiter kitchen admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	ProviderToken string `json:"providerToken" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public view of a user; it never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Image     string    `json:"image,omitempty"`
	IsActive  bool      `json:"isActive"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProfileResponse struct {
	User UserResponse `json:"user"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     value(user.Email),
		Phone:     value(user.Phone),
		Role:      string(user.Role),
		Image:     value(user.Image),
		IsActive:  user.IsActive,
		IsBlocked: user.IsBlocked,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type SecurityLogResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId,omitempty"`
	IPAddress string          `json:"ipAddress,omitempty"`
	Action    string          `json:"action"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func SecurityLogResponsesFromEntities(logs []entity.SecurityLog) []SecurityLogResponse {
	responses := make([]SecurityLogResponse, 0, len(logs))
	for _, log := range logs {
		response := SecurityLogResponse{
			ID:        log.ID.String(),
			IPAddress: value(log.IPAddress),
			Action:    string(log.Action),
			CreatedAt: log.CreatedAt,
		}
		if log.UserID != nil {
			response.UserID = log.UserID.String()
		}
		if len(log.Metadata) > 0 {
			response.Metadata = json.RawMessage(log.Metadata)
		}
		responses = append(responses, response)
	}
	return responses
}
