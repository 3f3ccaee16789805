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
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentHandler serves the product comment endpoints.
type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// CommentRequest defines the structure for comment creation requests
type CommentRequest struct {
	Text   string `json:"text"`
	UserID uint   `json:"user_id"`
}

// LikesRequest carries the absolute likes value for the set-likes operation.
type LikesRequest struct {
	Likes *int `json:"likes"`
}

// List handles retrieving all comments across products.
func (h *CommentHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var comments []model.Comment
	if result := h.db.Order("id").Find(&comments); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "comment"))
	}

	log.Info("Comments retrieved", zap.Int("count", len(comments)))
	return c.JSON(http.StatusOK, comments)
}

// ListByProduct handles retrieving the comments under a product.
func (h *CommentHandler) ListByProduct(c echo.Context) error {
	log := logger.FromContext(c)

	productID, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var comments []model.Comment
	result := h.db.Where("product_id = ?", productID).Order("id").Find(&comments)
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "comment"))
	}

	log.Info("Product comments retrieved",
		zap.Uint("product_id", productID),
		zap.Int("count", len(comments)))
	return c.JSON(http.StatusOK, comments)
}

// Create handles posting a comment under a product. Likes start at zero.
func (h *CommentHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("comment", "create")

	productID, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if strings.TrimSpace(req.Text) == "" {
		return writeError(c, log, apperr.New(apperr.Validation, "text is required"))
	}
	if req.UserID == 0 {
		return writeError(c, log, apperr.New(apperr.Validation, "user_id is required"))
	}

	comment := model.Comment{
		ProductID: productID,
		UserID:    req.UserID,
		Text:      req.Text,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&comment); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "comment"))
	}

	log.Info("Comment created",
		zap.Uint("comment_id", comment.ID),
		zap.Uint("product_id", comment.ProductID),
		zap.Uint("user_id", comment.UserID))
	return c.JSON(http.StatusCreated, comment)
}

// UpdateLikes sets the absolute likes value, scoped by comment and product
// together. A scope that matches no row is a not-found, not a silent no-op.
func (h *CommentHandler) UpdateLikes(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("comment", "update_likes")

	productID, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}
	commentID, appErr := parseID(c.Param("commentId"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	var req LikesRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if req.Likes == nil {
		return writeError(c, log, apperr.New(apperr.Validation, "likes is required"))
	}
	if *req.Likes < 0 {
		return writeError(c, log, apperr.New(apperr.Validation, "likes must not be negative"))
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := h.db.Model(&model.Comment{}).
		Where("id = ? AND product_id = ?", commentID, productID).
		Update("likes", *req.Likes)
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "comment"))
	}
	if result.RowsAffected == 0 {
		return writeError(c, log, apperr.New(apperr.NotFound, "comment not found"))
	}

	var comment model.Comment
	if result := h.db.First(&comment, commentID); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "comment"))
	}

	log.Info("Comment likes updated",
		zap.Uint("comment_id", comment.ID),
		zap.Int("likes", comment.Likes))
	return c.JSON(http.StatusOK, comment)
}

// Delete removes a comment, scoped by comment and product together. Removing
// a comment that no longer exists is still a success.
func (h *CommentHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("comment", "delete")

	productID, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}
	commentID, appErr := parseID(c.Param("commentId"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := h.db.Where("id = ? AND product_id = ?", commentID, productID).
		Delete(&model.Comment{})
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "comment"))
	}

	log.Info("Comment deleted",
		zap.Uint("comment_id", commentID),
		zap.Uint("product_id", productID),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "comment deleted",
	})
}
