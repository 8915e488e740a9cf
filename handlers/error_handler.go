package handlers

import (
	"errors"

	"github.com/anjiri1684/trivia_api/apperrors"
	"github.com/anjiri1684/trivia_api/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every failed request as
// {"success": false, "error": code, "message": ...}. Only the fixed message
// and validation problems reach the client; the cause is logged.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.Error
		var fiberErr *fiber.Error
		if !errors.As(err, &appErr) && errors.As(err, &fiberErr) {
			appErr = apperrors.FromStatus(fiberErr.Code, err)
		} else {
			appErr = apperrors.As(err)
		}

		fields := []zap.Field{
			zap.Int("status", appErr.Code),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		}
		if appErr.Code >= fiber.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Warn("request rejected", fields...)
		}

		resp := fiber.Map{
			"success": false,
			"error":   appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Problems) > 0 {
			resp["problems"] = appErr.Problems
		}
		return c.Status(appErr.Code).JSON(resp)
	}
}
