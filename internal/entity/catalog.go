package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CID string    `gorm:"column:cid;type:varchar(255);uniqueIndex;not null"`

	Name        string  `gorm:"type:varchar(255);not null"`
	Description string  `gorm:"type:text"`
	Image       *string `gorm:"type:text"`
	IsActive    bool    `gorm:"not null"`
	SortOrder   int     `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	PID string    `gorm:"column:pid;type:varchar(32);uniqueIndex;not null"`

	Name       string    `gorm:"type:varchar(255);not null"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Category   Category  `gorm:"constraint:OnDelete:RESTRICT"`

	Description     string  `gorm:"type:text"`
	Price           float64 `gorm:"type:decimal(12,2);not null"`
	Images          datatypes.JSONSlice[string]
	IsVeg           bool `gorm:"not null"`
	IsAvailable     bool `gorm:"not null"`
	PrepTimeMinutes *int
	TaxRate         *float64 `gorm:"type:decimal(6,3)"`
	Tags            datatypes.JSONSlice[string]
	DailySpecial    bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
