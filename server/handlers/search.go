package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const defaultSearchLimit = 20

func SearchQuests(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", defaultSearchLimit)
		if limit <= 0 || limit > 100 {
			limit = defaultSearchLimit
		}
		quests, err := webApp.Search.SearchQuests(c.Context(), c.Query("q"), limit)
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{
			"quests": quests,
			"total":  len(quests),
		})
	}
}
