package handler

import (
	"errors"
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

// AuthHandler serves registration and the stateless credential check.
type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// RegisterRequest defines the structure for registration requests. The
// description field is only honored by seller registration.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *RegisterRequest) validate() *apperr.Error {
	switch {
	case r.Username == "":
		return apperr.New(apperr.Validation, "username is required")
	case r.Password == "":
		return apperr.New(apperr.Validation, "password is required")
	case r.Email == "":
		return apperr.New(apperr.Validation, "email is required")
	}
	return nil
}

// Register creates a buyer account.
func (h *AuthHandler) Register(c echo.Context) error {
	return h.register(c, model.RoleBuyer)
}

// RegisterSeller creates a seller account with an optional bio.
func (h *AuthHandler) RegisterSeller(c echo.Context) error {
	return h.register(c, model.RoleSeller)
}

// register inserts the account in a single statement. Uniqueness of username
// and email is enforced by the store's unique indexes, so a duplicate shows
// up as a conflict without a pre-check query racing the insert.
func (h *AuthHandler) register(c echo.Context, role int) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if appErr := req.validate(); appErr != nil {
		prometheus.RecordAuthError("incomplete_registration")
		return writeError(c, log, appErr)
	}

	user := model.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Name:     req.Name,
		Active:   true,
		Role:     role,
	}
	if role == model.RoleSeller {
		user.Description = req.Description
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.db.Create(&user); result.Error != nil {
		appErr := apperr.FromGorm(result.Error, "user")
		if appErr.Kind == apperr.Conflict {
			appErr.Message = "username or email already registered"
			prometheus.RecordAuthError("duplicate_registration")
		}
		return writeError(c, log, appErr)
	}

	log.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Int("role", user.Role))
	return c.JSON(http.StatusCreated, user)
}

// Login checks credentials and reports the outcome. No session or token is
// issued; every request stands on its own.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return writeError(c, log, apperr.Wrap(apperr.Validation, "invalid request data", err))
	}
	if req.Username == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_credentials")
		return writeError(c, log, apperr.New(apperr.Validation, "username and password are required"))
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := h.db.Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			prometheus.RecordAuthError("user_not_found")
			return writeError(c, log, apperr.New(apperr.NotFound, "user not found"))
		}
		return writeError(c, log, apperr.FromGorm(result.Error, "user"))
	}

	// Verbatim comparison; password storage is intentionally not hardened.
	if user.Password != req.Password {
		prometheus.RecordAuthError("invalid_password")
		return writeError(c, log, apperr.New(apperr.Auth, "invalid credentials"))
	}

	log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"user":    user,
	})
}
