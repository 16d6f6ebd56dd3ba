package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/database/repositories"
	"github.com/faucetdrop/questhub/questhub/services"
)

// WebApp aggregates everything the HTTP layer needs.
type WebApp struct {
	Quests      *services.QuestService
	Submissions *services.SubmissionService
	Leaderboard *services.LeaderboardService
	Rewards     *services.RewardService
	Prices      *services.PriceService
	Spaces      *services.SpacesService
	Search      *services.SearchService
	ShareCards  *services.ShareCardService
	Profiles    repositories.ProfileRepository
	Version     string
	Commit      string
}

func sendSuccess(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(http.StatusOK).JSON(body)
}

func sendCreated(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(http.StatusCreated).JSON(body)
}
