package handler

import (
	"marketplace-service/internal/apperr"
	"marketplace-service/internal/model"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartHandler serves the shopping cart endpoints. Cart rows are a multiset:
// adding the same product twice creates two entries.
type CartHandler struct {
	db *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

// CartRequest defines the structure for add-to-cart requests
type CartRequest struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
}

// Add inserts a cart entry. A missing user or product surfaces as a
// foreign-key violation from the store.
func (h *CartHandler) Add(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("cart", "add")

	var req CartRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if req.UserID == 0 || req.ProductID == 0 {
		return writeError(c, log, apperr.New(apperr.Validation, "user_id and product_id are required"))
	}

	entry := model.CartEntry{UserID: req.UserID, ProductID: req.ProductID}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&entry); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "cart entry"))
	}

	log.Info("Cart entry created",
		zap.Uint("cart_id", entry.ID),
		zap.Uint("user_id", entry.UserID),
		zap.Uint("product_id", entry.ProductID))
	return c.JSON(http.StatusCreated, entry)
}

// List handles retrieving cart entries, optionally filtered by owner.
func (h *CartHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	query := h.db.Order("id")

	if userID := c.QueryParam("userId"); userID != "" {
		id, appErr := parseID(userID)
		if appErr != nil {
			return writeError(c, log, appErr)
		}
		query = query.Where("user_id = ?", id)
		log.Info("Filtering cart by user", zap.Uint("user_id", id))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var entries []model.CartEntry
	if result := query.Find(&entries); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "cart entry"))
	}

	log.Info("Cart entries retrieved", zap.Int("count", len(entries)))
	return c.JSON(http.StatusOK, entries)
}

// Get handles retrieving a single cart entry by ID
func (h *CartHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var entry model.CartEntry
	if result := h.db.First(&entry, id); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "cart entry"))
	}

	log.Info("Cart entry retrieved", zap.Uint("cart_id", entry.ID))
	return c.JSON(http.StatusOK, entry)
}

// Delete handles removing a cart entry. Removing an id that no longer exists
// is still a success.
func (h *CartHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("cart", "delete")

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := h.db.Delete(&model.CartEntry{}, id)
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "cart entry"))
	}

	log.Info("Cart entry deleted",
		zap.Uint("cart_id", id),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "cart entry deleted",
	})
}
