package service

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUserExists           = errors.New("user already exists")
	ErrPhoneTaken           = errors.New("phone number already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserInactive         = errors.New("user is not active")
	ErrAccountNotFound      = errors.New("user not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidOTP           = errors.New("invalid or expired otp")
	ErrEmailDelivery        = errors.New("failed to send email")
	ErrFederatedLoginFailed = errors.New("federated login failed")

	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrProductNotFound  = errors.New("product not found")
)
