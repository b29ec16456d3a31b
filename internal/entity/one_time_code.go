package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OneTimeCode is a password reset code. Only the hash of the code is stored.
type OneTimeCode struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	CodeHash  string    `gorm:"type:text;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`

	CreatedAt time.Time
}

func (c *OneTimeCode) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
