package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

// StatusClientClosedRequest is reported when the client went away mid-request
const StatusClientClosedRequest = 499

// ErrorHandler renders every error as {"error":{"code","message","request_id"}}
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		reqID := requestID(c)

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return writeError(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message, reqID)
		}

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode >= 500 {
				logger.Error("internal error",
					slog.String("request_id", reqID),
					slog.String("code", appErr.Code),
					slog.Any("error", appErr.Err),
				)
			} else if appErr.Err != nil {
				logger.Debug("request rejected",
					slog.String("request_id", reqID),
					slog.String("code", appErr.Code),
					slog.Any("error", appErr.Err),
				)
			}

			return writeError(c, appErr.StatusCode, appErr.Code, appErr.Message, reqID)
		}

		switch {
		case errors.Is(err, context.Canceled):
			return writeError(c, StatusClientClosedRequest, "REQUEST_CANCELLED", "Request cancelled", reqID)
		case errors.Is(err, context.DeadlineExceeded):
			return writeError(c, fiber.StatusGatewayTimeout, "TIMEOUT", "Landmark provider timed out", reqID)
		}

		logger.Error("unhandled error",
			slog.String("request_id", reqID),
			slog.Any("error", err),
			slog.String("path", c.Path()),
		)

		return writeError(c, domain.ErrInternal.StatusCode, domain.ErrInternal.Code, domain.ErrInternal.Message, reqID)
	}
}

func writeError(c *fiber.Ctx, status int, code, message, reqID string) error {
	body := fiber.Map{
		"code":    code,
		"message": message,
	}
	if reqID != "" {
		body["request_id"] = reqID
	}

	return c.Status(status).JSON(fiber.Map{"error": body})
}
