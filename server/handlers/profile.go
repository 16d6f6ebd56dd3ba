package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/chain"
	"github.com/faucetdrop/questhub/questhub/database/models"
)

func ProfileByWallet(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := webApp.Profiles.GetByWallet(c.Context(), c.Params("wallet"))
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"profile": profile})
	}
}

func ProfileByUsername(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := webApp.Profiles.GetByUsername(c.Context(), c.Params("username"))
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"profile": profile})
	}
}

func ProfileUpsert(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Params("wallet")
		if !chain.ValidAddress(wallet) {
			return apperrors.Validation("invalid wallet address %q", wallet)
		}
		var req struct {
			Username  string            `json:"username"`
			AvatarURL string            `json:"avatarUrl"`
			Socials   map[string]string `json:"socials"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Validation("invalid profile payload: %v", err)
		}
		if req.Username == "" {
			return apperrors.Validation("username is required")
		}

		profile := &models.Profile{
			Wallet:    wallet,
			Username:  req.Username,
			AvatarURL: req.AvatarURL,
			Socials:   req.Socials,
			UpdatedAt: time.Now(),
		}
		if err := webApp.Profiles.Upsert(c.Context(), profile); err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"profile": profile})
	}
}
