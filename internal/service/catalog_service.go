package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sulakshana2003/BackEnd-R/internal/cache"
	"github.com/sulakshana2003/BackEnd-R/internal/entity"
	"github.com/sulakshana2003/BackEnd-R/internal/repository"
	"github.com/sulakshana2003/BackEnd-R/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	categoryListCacheKey = "categories:active"
	categoryListCacheTTL = 5 * time.Minute
	productKeyAttempts   = 3
)

type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
	SortOrder   int
}

type CreateProductInput struct {
	Name            string
	CategoryCID     string
	Description     string
	Price           float64
	Images          []string
	IsVeg           bool
	IsAvailable     *bool
	PrepTimeMinutes *int
	TaxRate         *float64
	Tags            []string
	DailySpecial    bool
}

type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      cache.Cache
	log        logrus.FieldLogger
}

// NewCatalogService builds the menu catalog workflows. cache may be nil.
func NewCatalogService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	c cache.Cache,
	log logrus.FieldLogger,
) *CatalogService {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &CatalogService{categories: categories, products: products, cache: c, log: log}
}

func (s *CatalogService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	cid := utils.CategoryKey(name)

	existing, err := s.categories.FindByCID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &entity.Category{
		CID:         cid,
		Name:        name,
		Description: input.Description,
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if image := strings.TrimSpace(input.Image); image != "" {
		category.Image = &image
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	s.invalidateCategories(ctx)
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	if s.cache != nil {
		var cached []entity.Category
		found, err := s.cache.Get(ctx, categoryListCacheKey, &cached)
		if err != nil {
			s.log.WithError(err).Warn("category cache read failed")
		} else if found {
			return cached, nil
		}
	}

	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, categoryListCacheKey, categories, categoryListCacheTTL); err != nil {
			s.log.WithError(err).Warn("category cache write failed")
		}
	}
	return categories, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, cid string, update repository.CategoryUpdate) (*entity.Category, error) {
	category, err := s.categories.FindByCID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		update.Name = nil
	}
	if err := s.categories.Update(ctx, cid, update); err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx)
	return s.categories.FindByCID(ctx, cid)
}

// DeleteCategory hides the category from listings; the row is kept.
func (s *CatalogService) DeleteCategory(ctx context.Context, cid string) error {
	inactive := false
	_, err := s.UpdateCategory(ctx, cid, repository.CategoryUpdate{IsActive: &inactive})
	return err
}

func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price < 0 || strings.TrimSpace(input.CategoryCID) == "" {
		return nil, ErrInvalidInput
	}

	category, err := s.categories.FindByCID(ctx, input.CategoryCID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrInvalidCategory
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}
	product := &entity.Product{
		Name:            name,
		CategoryID:      category.ID,
		Description:     input.Description,
		Price:           input.Price,
		Images:          datatypes.JSONSlice[string](input.Images),
		IsVeg:           input.IsVeg,
		IsAvailable:     available,
		PrepTimeMinutes: input.PrepTimeMinutes,
		TaxRate:         input.TaxRate,
		Tags:            datatypes.JSONSlice[string](input.Tags),
		DailySpecial:    input.DailySpecial,
	}

	// Concurrent creates may derive the same key; the unique index rejects
	// the loser, which retries with a fresh key.
	for attempt := 1; ; attempt++ {
		last, err := s.products.LastPID(ctx)
		if err != nil {
			return nil, err
		}
		product.PID = utils.NextProductKey(last)
		err = s.products.Create(ctx, product)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == productKeyAttempts {
			return nil, err
		}
		s.log.WithField("pid", product.PID).Warn("product key taken, retrying")
	}
	product.Category = *category
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error) {
	return s.products.ListAvailable(ctx, filter)
}

func (s *CatalogService) SetProductAvailability(ctx context.Context, pid string, available bool) (*entity.Product, error) {
	product, err := s.products.FindByPID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.products.SetAvailability(ctx, pid, available); err != nil {
		return nil, err
	}
	product.IsAvailable = available
	return product, nil
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, categoryListCacheKey); err != nil {
		s.log.WithError(err).Warn("category cache invalidation failed")
	}
}
