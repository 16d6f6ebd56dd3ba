package handlers

import "github.com/gofiber/fiber/v2"

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return sendSuccess(c, fiber.Map{
			"status":  "healthy",
			"version": webApp.Version,
			"commit":  webApp.Commit,
		})
	}
}
