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

// UserHandler serves the user account endpoints.
type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// UserUpdateRequest defines the mutable account fields.
type UserUpdateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Active   bool   `json:"active"`
	Mobile   string `json:"mobile"`
	Name     string `json:"name"`
}

// List handles retrieving users, optionally filtered by account type.
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	query := h.db.Order("id")

	// "seller" and "buyer" map to the role constants; anything else returns
	// the full list.
	switch c.QueryParam("type") {
	case "seller":
		query = query.Where("role = ?", model.RoleSeller)
	case "buyer":
		query = query.Where("role = ?", model.RoleBuyer)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var users []model.User
	if result := query.Find(&users); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "user"))
	}

	log.Info("Users retrieved", zap.Int("count", len(users)))
	return c.JSON(http.StatusOK, users)
}

// Get handles retrieving a single user by ID
func (h *UserHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := h.db.First(&user, id); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "user"))
	}

	log.Info("User retrieved", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, user)
}

// GetByUsername handles the username lookup endpoint.
func (h *UserHandler) GetByUsername(c echo.Context) error {
	log := logger.FromContext(c)

	username := c.QueryParam("username")
	if username == "" {
		return writeError(c, log, apperr.New(apperr.Validation, "username is required"))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := h.db.Where("username = ?", username).First(&user); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "user"))
	}

	log.Info("User retrieved by username",
		zap.Uint("user_id", user.ID),
		zap.String("username", username))
	return c.JSON(http.StatusOK, user)
}

// Update replaces the mutable account fields. Zero affected rows means the
// id does not exist.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("user", "update")

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if req.Username == "" || req.Password == "" {
		return writeError(c, log, apperr.New(apperr.Validation, "username and password are required"))
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := h.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"username": req.Username,
		"password": req.Password,
		"active":   req.Active,
		"mobile":   req.Mobile,
		"name":     req.Name,
	})
	if result.Error != nil {
		appErr := apperr.FromGorm(result.Error, "user")
		if appErr.Kind == apperr.Conflict {
			appErr.Message = "username already taken"
		}
		return writeError(c, log, appErr)
	}
	if result.RowsAffected == 0 {
		return writeError(c, log, apperr.New(apperr.NotFound, "user not found"))
	}

	var user model.User
	if result := h.db.First(&user, id); result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "user"))
	}

	log.Info("User updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, user)
}

// Delete handles deleting a user. Deleting an id that no longer exists is
// still a success.
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordResourceOperation("user", "delete")

	id, appErr := parseID(c.Param("id"))
	if appErr != nil {
		return writeError(c, log, appErr)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := h.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return writeError(c, log, apperr.FromGorm(result.Error, "user"))
	}

	log.Info("User deleted",
		zap.Uint("user_id", id),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "user deleted",
	})
}
