package handler

import (
	"database/sql"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clothera/catalog-api/internal/service"
	"github.com/clothera/catalog-api/internal/utils"
)

// CatalogHandler handles catalog query HTTP endpoints.
type CatalogHandler struct {
	catalogService      *service.CatalogService
	availabilityService *service.AvailabilityService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, availabilityService *service.AvailabilityService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, availabilityService: availabilityService}
}

// ListProducts handles POST /v1/catalog/products. The body is an optional
// filter object; an empty body lists the whole catalog.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req service.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.Error(c, 400, "INVALID_FILTER", "Malformed filter request")
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	total, products, err := h.catalogService.List(req)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidPagination) {
			utils.Error(c, 400, "INVALID_PAGINATION", "page and size must be >= 1")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list products")
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"total":    total,
		"products": products,
	}, req.Page, req.PageSize, total)
}

// GetProduct handles GET /v1/catalog/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be an integer")
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get product")
		return
	}

	utils.Success(c, 200, "Product retrieved successfully", gin.H{
		"product": product,
	})
}

// CheckAvailability handles POST /v1/catalog/availability. The body is a list
// of {id, sizeName} pairs; the response mirrors it 1:1 in order.
func (h *CatalogHandler) CheckAvailability(c *gin.Context) {
	var items []service.AvailabilityItem
	if err := c.ShouldBindJSON(&items); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Body must be a list of {id, sizeName} items")
		return
	}

	results, err := h.availabilityService.CheckAvailability(items)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidBatchItem) {
			utils.Error(c, 400, "INVALID_REQUEST", "Every item must include id and sizeName")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to check availability")
		return
	}

	utils.Success(c, 200, "Availability retrieved successfully", gin.H{
		"items": results,
	})
}
