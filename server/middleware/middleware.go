package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/logger"
)

// ErrorHandler maps application errors onto HTTP statuses and the JSON
// envelope every route uses. Validation problems are the caller's fault,
// missing resources are 404, upstream failures (price oracle, object
// storage, chrome) surface as 502 so the client can retry.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var appErr *apperrors.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
		switch appErr.Kind {
		case apperrors.KindValidation:
			code = fiber.StatusBadRequest
		case apperrors.KindNotFound:
			code = fiber.StatusNotFound
		case apperrors.KindRemoteService, apperrors.KindChainTransaction:
			code = fiber.StatusBadGateway
		}
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		logger.LogError("Unhandled request error", err,
			"method", c.Method(),
			"path", c.Path(),
		)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// LoggingMiddleware logs every handled request through the shared handler.
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.LogRequest(c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}

// SecurityHeaders adds baseline security headers to every response.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		return c.Next()
	}
}
