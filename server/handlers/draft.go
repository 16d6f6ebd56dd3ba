package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

func DraftsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		creator := c.Query("creator")
		if creator == "" {
			return apperrors.Validation("creator query parameter is required")
		}
		drafts, err := webApp.Quests.ListDrafts(c.Context(), creator)
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{
			"drafts": drafts,
			"total":  len(drafts),
		})
	}
}

func DraftsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		draft, canonical, err := webApp.Quests.GetDraft(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{
			"draft":      draft,
			"normalized": canonical,
		})
	}
}

func DraftsSave(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ID            string         `json:"id"`
			CreatorWallet string         `json:"creatorWallet"`
			Payload       map[string]any `json:"payload"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Validation("invalid draft payload: %v", err)
		}
		draft, err := webApp.Quests.SaveDraft(c.Context(), req.ID, req.CreatorWallet, req.Payload)
		if err != nil {
			return err
		}
		return sendCreated(c, fiber.Map{"draft": draft})
	}
}

func DraftsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		creator := c.Query("creator")
		if creator == "" {
			return apperrors.Validation("creator query parameter is required")
		}
		if err := webApp.Quests.DeleteDraft(c.Context(), c.Params("id"), creator); err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"deleted": true})
	}
}
