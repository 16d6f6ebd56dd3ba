package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

func LeaderboardDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := webApp.Leaderboard.Leaderboard(c.Context(), c.Params("address"))
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{
			"leaderboard": entries,
			"total":       len(entries),
		})
	}
}

// LeaderboardShareCard renders the current top five as a PNG, stores it in
// object storage, and returns the durable URL.
func LeaderboardShareCard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		address := c.Params("address")

		quest, err := webApp.Quests.GetQuest(ctx, address)
		if err != nil {
			return err
		}
		entries, err := webApp.Leaderboard.Leaderboard(ctx, address)
		if err != nil {
			return err
		}

		png, err := webApp.ShareCards.GenerateShareCard(ctx, quest.Title, entries)
		if err != nil {
			return err
		}
		url, err := webApp.Spaces.UploadShareCard(ctx, address, png)
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"url": url})
	}
}

func ClaimStatus(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Query("wallet")
		if wallet == "" {
			return apperrors.Validation("wallet query parameter is required")
		}
		status, err := webApp.Rewards.ClaimStatusFor(c.Context(), c.Params("address"), wallet)
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"claim": status})
	}
}
