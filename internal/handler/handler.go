package handler

import (
	"marketplace-service/internal/apperr"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// writeError logs a classified error and renders its client-safe message.
// Store failures log the underlying cause at error level; everything else is
// an expected outcome and logs at warn.
func writeError(c echo.Context, log *zap.Logger, appErr *apperr.Error) error {
	if appErr.Kind == apperr.Store {
		log.Error("Store operation failed", zap.Error(appErr))
	} else {
		log.Warn(appErr.Message, zap.Error(appErr.Err))
	}
	return c.JSON(appErr.HTTPStatus(), echo.Map{"error": appErr.Message})
}

// parseID parses a positive integer identifier from a path or query value.
func parseID(value string) (uint, *apperr.Error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.Validation, "invalid id")
	}
	return uint(id), nil
}
