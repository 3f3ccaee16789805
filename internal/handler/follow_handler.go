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

// FollowHandler serves the seller-follow endpoints. Edges are unique per
// (seller, follower) pair; a repeated follow reports a conflict.
type FollowHandler struct {
	db *gorm.DB
}

func NewFollowHandler(db *gorm.DB) *FollowHandler {
	return &FollowHandler{db: db}
}

// FollowRequest defines the structure for follow creation requests
type FollowRequest struct {
	SellerID uint `json:"seller_id"`
	UserID   uint `json:"user_id"`
}

// Create inserts a follow edge.
func (h *FollowHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("follow", "create")

	var req FollowRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if req.SellerID == 0 || req.UserID == 0 {
		return writeError(c, log, apperr.New(apperr.Validation, "seller_id and user_id are required"))
	}

	follow := model.Follow{SellerID: req.SellerID, UserID: req.UserID}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&follow); result.Error != nil {
		appErr := apperr.FromGorm(result.Error, "follow")
		if appErr.Kind == apperr.Conflict {
			appErr.Message = "already following this seller"
		}
		return writeError(c, log, appErr)
	}

	log.Info("Follow created",
		zap.Uint("follow_id", follow.ID),
		zap.Uint("seller_id", follow.SellerID),
		zap.Uint("user_id", follow.UserID))
	return c.JSON(http.StatusCreated, follow)
}

// List answers one of two questions: who follows a seller (sellerId), or
// which sellers a user follows (userId). Exactly one must be supplied.
func (h *FollowHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	sellerParam := c.QueryParam("sellerId")
	userParam := c.QueryParam("userId")
	if (sellerParam == "") == (userParam == "") {
		return writeError(c, log, apperr.New(apperr.Validation, "exactly one of sellerId or userId is required"))
	}

	if sellerParam != "" {
		sellerID, appErr := parseID(sellerParam)
		if appErr != nil {
			return writeError(c, log, appErr)
		}
		return h.followerIDs(c, log, sellerID)
	}

	userID, appErr := parseID(userParam)
	if appErr != nil {
		return writeError(c, log, appErr)
	}
	return h.followedSellerIDs(c, log, userID)
}

// FollowersBySeller returns the follower user ids for the seller in the path.
func (h *FollowHandler) FollowersBySeller(c echo.Context) error {
	log := logger.FromContext(c)

	sellerID, appErr := parseID(c.Param("sellerId"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}
	return h.followerIDs(c, log, sellerID)
}

// FollowedSellers returns the seller ids the user in the path follows.
func (h *FollowHandler) FollowedSellers(c echo.Context) error {
	log := logger.FromContext(c)

	userID, appErr := parseID(c.Param("userId"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}
	return h.followedSellerIDs(c, log, userID)
}

func (h *FollowHandler) followerIDs(c echo.Context, log *zap.Logger, sellerID uint) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	ids := make([]uint, 0)
	result := h.db.Model(&model.Follow{}).
		Where("seller_id = ?", sellerID).
		Order("id").
		Pluck("user_id", &ids)
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "follow"))
	}

	log.Info("Followers retrieved",
		zap.Uint("seller_id", sellerID),
		zap.Int("count", len(ids)))
	return c.JSON(http.StatusOK, ids)
}

func (h *FollowHandler) followedSellerIDs(c echo.Context, log *zap.Logger, userID uint) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	ids := make([]uint, 0)
	result := h.db.Model(&model.Follow{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("seller_id", &ids)
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "follow"))
	}

	log.Info("Followed sellers retrieved",
		zap.Uint("user_id", userID),
		zap.Int("count", len(ids)))
	return c.JSON(http.StatusOK, ids)
}

// Delete removes a follow edge by record id. Removing an id that no longer
// exists is still a success.
func (h *FollowHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("follow", "delete")

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := h.db.Delete(&model.Follow{}, id)
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "follow"))
	}

	log.Info("Follow deleted",
		zap.Uint("follow_id", id),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "follow deleted",
	})
}
