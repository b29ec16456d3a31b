package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleCashier  UserRole = "cashier"
	UserRoleWaiter   UserRole = "waiter"
	UserRoleKitchen  UserRole = "kitchen"
	UserRoleAdmin    UserRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCustomer, UserRoleCashier, UserRoleWaiter, UserRoleKitchen, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`

	// Email and Phone are nullable so the unique indexes only apply to present values.
	Email        *string  `gorm:"type:varchar(255);uniqueIndex"`
	Phone        *string  `gorm:"type:varchar(32);uniqueIndex"`
	PasswordHash *string  `gorm:"type:text"`
	Role         UserRole `gorm:"type:varchar(20);default:'customer';not null"`

	IsActive  bool    `gorm:"default:true;not null"`
	IsBlocked bool    `gorm:"not null"`
	Image     *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	OneTimeCodes []OneTimeCode
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = UserRoleCustomer
	}
	return nil
}

// CanSignIn reports whether the account is allowed to obtain a token.
func (u *User) CanSignIn() bool {
	return u.IsActive && !u.IsBlocked
}
