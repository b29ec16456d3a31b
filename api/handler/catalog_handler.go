package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sulakshana2003/BackEnd-R/internal/dto"
	"github.com/sulakshana2003/BackEnd-R/internal/repository"
	"github.com/sulakshana2003/BackEnd-R/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	Service  *service.CatalogService
	Validate *validator.Validate
}

func NewCatalogHandler(svc *service.CatalogService, validate *validator.Validate) *CatalogHandler {
	return &CatalogHandler{Service: svc, Validate: validate}
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		SortOrder:   req.SortOrder,
	}
	category, err := h.Service.CreateCategory(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.CategoryEnvelope{
		Message:  "category created successfully",
		Category: dto.CategoryResponseFromEntity(category),
	})
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.Service.ListCategories(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CategoryListResponse{Categories: dto.CategoryResponsesFromEntities(categories)})
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	var req dto.UpdateCategoryRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	update := repository.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}
	category, err := h.Service.UpdateCategory(c.Request().Context(), c.Param("cid"), update)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.CategoryEnvelope{
		Message:  "category updated successfully",
		Category: dto.CategoryResponseFromEntity(category),
	})
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.Service.DeleteCategory(c.Request().Context(), c.Param("cid")); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "category deleted successfully"})
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req dto.CreateProductRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if req.Price == nil {
		return writeError(c, http.StatusBadRequest, errors.New("price is required"))
	}
	input := service.CreateProductInput{
		Name:            req.Name,
		CategoryCID:     req.CategoryCID,
		Description:     req.Description,
		Price:           *req.Price,
		Images:          req.Images,
		IsVeg:           req.IsVeg,
		IsAvailable:     req.IsAvailable,
		PrepTimeMinutes: req.PrepTimeMinutes,
		TaxRate:         req.TaxRate,
		Tags:            req.Tags,
		DailySpecial:    req.DailySpecial,
	}
	product, err := h.Service.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ProductEnvelope{
		Message: "product created successfully",
		Product: dto.ProductResponseFromEntity(product),
	})
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	products, err := h.Service.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProductListResponse{Products: dto.ProductResponsesFromEntities(products)})
}

func (h *CatalogHandler) SetAvailability(c echo.Context) error {
	var req dto.AvailabilityRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if req.IsAvailable == nil {
		return writeError(c, http.StatusBadRequest, errors.New("isAvailable is required"))
	}
	product, err := h.Service.SetProductAvailability(c.Request().Context(), c.Param("pid"), *req.IsAvailable)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ProductEnvelope{Product: dto.ProductResponseFromEntity(product)})
}

func parseProductFilter(c echo.Context) (repository.ProductFilter, error) {
	filter := repository.ProductFilter{
		CategoryCID: strings.TrimSpace(c.QueryParam("category")),
		Tag:         strings.TrimSpace(c.QueryParam("tag")),
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.New("invalid minPrice")
		}
		filter.MinPrice = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.New("invalid maxPrice")
		}
		filter.MaxPrice = &v
	}
	if raw := c.QueryParam("dailySpecial"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("invalid dailySpecial")
		}
		filter.DailySpecial = &v
	}
	return filter, nil
}
