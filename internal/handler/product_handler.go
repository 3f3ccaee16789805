package handler

import (
	"marketplace-service/internal/apperr"
	"marketplace-service/internal/model"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rate        float64         `json:"rate"`
	Count       int             `json:"count"`
}

func (r *ProductRequest) validate() *apperr.Error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return apperr.New(apperr.Validation, "title is required")
	case r.Price.IsNegative():
		return apperr.New(apperr.Validation, "price must not be negative")
	case r.Rate < 0 || r.Rate > 5:
		return apperr.New(apperr.Validation, "rate must be between 0 and 5")
	case r.Count < 0:
		return apperr.New(apperr.Validation, "count must not be negative")
	}
	return nil
}

// List handles retrieving all products with an optional case-insensitive
// substring search over title and description.
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	query := h.db.Order("id")

	if search := c.QueryParam("search"); search != "" {
		prometheus.ProductSearchCounter.Inc()
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		log.Info("Searching products", zap.String("search", search))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var products []model.Product
	if result := query.Find(&products); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "product"))
	}

	log.Info("Products retrieved", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var product model.Product
	if result := h.db.First(&product, id); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "product"))
	}

	log.Info("Product retrieved", zap.Uint("product_id", product.ID))
	return c.JSON(http.StatusOK, product)
}

// Create handles creating a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("product", "create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if appErr := req.validate(); appErr != nil {
		return writeError(c, log, appErr)
	}

	product := model.Product{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Rate:        req.Rate,
		Count:       req.Count,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&product); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "product"))
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("title", product.Title))
	return c.JSON(http.StatusCreated, product)
}

// Update handles a full-field replace of an existing product. Zero affected
// rows means the id does not exist.
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("product", "update")

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if appErr := req.validate(); appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := h.db.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":       req.Title,
		"price":       req.Price,
		"description": req.Description,
		"category":    req.Category,
		"image":       req.Image,
		"rate":        req.Rate,
		"count":       req.Count,
	})
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "product"))
	}
	if result.RowsAffected == 0 {
		return writeError(c, log, apperr.New(apperr.NotFound, "product not found"))
	}

	var product model.Product
	if result := h.db.First(&product, id); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "product"))
	}

	log.Info("Product updated", zap.Uint("product_id", product.ID))
	return c.JSON(http.StatusOK, product)
}

// Delete handles deleting a product. Deleting an id that no longer exists is
// still a success.
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("product", "delete")

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := h.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "product"))
	}

	log.Info("Product deleted",
		zap.Uint("product_id", id),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "product deleted",
	})
}
