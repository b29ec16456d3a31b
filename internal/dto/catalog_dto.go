package dto

import (
	"time"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"omitempty,url"`
	SortOrder   int    `json:"sortOrder"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Image       *string `json:"image" validate:"omitempty,url"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

type CategoryResponse struct {
	CID         string    `json:"cid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoryEnvelope struct {
	Message  string           `json:"message,omitempty"`
	Category CategoryResponse `json:"category"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CreateProductRequest struct {
	Name            string   `json:"name" validate:"required,max=255"`
	CategoryCID     string   `json:"categoryCid" validate:"required"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price" validate:"required,gte=0"`
	Images          []string `json:"images" validate:"omitempty,dive,url"`
	IsVeg           bool     `json:"isVeg"`
	IsAvailable     *bool    `json:"isAvailable"`
	PrepTimeMinutes *int     `json:"prepTimeMinutes" validate:"omitempty,gte=0"`
	TaxRate         *float64 `json:"taxRate" validate:"omitempty,gte=0"`
	Tags            []string `json:"tags" validate:"omitempty,dive,required"`
	DailySpecial    bool     `json:"dailySpecial"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

type ProductResponse struct {
	PID             string    `json:"pid"`
	Name            string    `json:"name"`
	CategoryCID     string    `json:"categoryCid"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	Images          []string  `json:"images"`
	IsVeg           bool      `json:"isVeg"`
	IsAvailable     bool      `json:"isAvailable"`
	PrepTimeMinutes *int      `json:"prepTimeMinutes,omitempty"`
	TaxRate         *float64  `json:"taxRate,omitempty"`
	Tags            []string  `json:"tags"`
	DailySpecial    bool      `json:"dailySpecial"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ProductEnvelope struct {
	Message string          `json:"message,omitempty"`
	Product ProductResponse `json:"product"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

func CategoryResponseFromEntity(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		CID:         c.CID,
		Name:        c.Name,
		Description: c.Description,
		Image:       value(c.Image),
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func CategoryResponsesFromEntities(categories []entity.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, CategoryResponseFromEntity(&categories[i]))
	}
	return responses
}

func ProductResponseFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		PID:             p.PID,
		Name:            p.Name,
		CategoryCID:     p.Category.CID,
		Description:     p.Description,
		Price:           p.Price,
		Images:          nonNil(p.Images),
		IsVeg:           p.IsVeg,
		IsAvailable:     p.IsAvailable,
		PrepTimeMinutes: p.PrepTimeMinutes,
		TaxRate:         p.TaxRate,
		Tags:            nonNil(p.Tags),
		DailySpecial:    p.DailySpecial,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func ProductResponsesFromEntities(products []entity.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ProductResponseFromEntity(&products[i]))
	}
	return responses
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
