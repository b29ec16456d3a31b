package repository

import (
	"context"
	"errors"

	"github.com/sulakshana2003/BackEnd-R/internal/entity"

	"gorm.io/gorm"
)

// CategoryUpdate lists the category columns to change; nil fields are left alone.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Image       *string
	IsActive    *bool
	SortOrder   *int
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByCID(ctx context.Context, cid string) (*entity.Category, error)
	ListActive(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, cid string, update CategoryUpdate) error
}

// ProductFilter narrows product listings; zero values mean no filter.
type ProductFilter struct {
	CategoryCID  string
	Tag          string
	MinPrice     *float64
	MaxPrice     *float64
	DailySpecial *bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	LastPID(ctx context.Context) (string, error)
	FindByPID(ctx context.Context, pid string) (*entity.Product, error)
	ListAvailable(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	SetAvailability(ctx context.Context, pid string, available bool) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByCID(ctx context.Context, cid string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).Where("cid = ?", cid).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, cid string, update CategoryUpdate) error {
	values := map[string]any{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}
	if update.Image != nil {
		values["image"] = *update.Image
	}
	if update.IsActive != nil {
		values["is_active"] = *update.IsActive
	}
	if update.SortOrder != nil {
		values["sort_order"] = *update.SortOrder
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Category{}).
		Where("cid = ?", cid).
		Updates(values).
		Error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// LastPID returns the highest product identifier, or "" when there are no products.
// Ordering by length first keeps p100000 after p99999.
func (r *productRepository) LastPID(ctx context.Context) (string, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Select("pid").
		Order("LENGTH(pid) DESC").
		Order("pid DESC").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return product.PID, nil
}

func (r *productRepository) FindByPID(ctx context.Context, pid string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("pid = ?", pid).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListAvailable(ctx context.Context, filter ProductFilter) ([]entity.Product, error) {
	var products []entity.Product
	query := r.db.WithContext(ctx).
		Preload("Category").
		Where("products.is_available = ?", true)

	if filter.CategoryCID != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.cid = ?", filter.CategoryCID)
	}
	if filter.Tag != "" {
		query = query.Where(jsonArrayContainsExpr(r.db, "products.tags"), jsonArrayContainsValue(r.db, filter.Tag))
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.DailySpecial != nil {
		query = query.Where("products.daily_special = ?", *filter.DailySpecial)
	}

	if err := query.Order("products.pid ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) SetAvailability(ctx context.Context, pid string, available bool) error {
	return r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("pid = ?", pid).
		Update("is_available", available).
		Error
}
