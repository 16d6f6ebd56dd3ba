package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

// TokenPrice serves the USD unit price the funding screen uses for its
// minimum-pool preview, through the same cached oracle the finalize
// validation reads.
func TokenPrice(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		chainID := c.QueryInt("chainId")
		if chainID <= 0 {
			return apperrors.Validation("chainId query parameter is required")
		}
		token := c.Query("token")
		if token == "" {
			return apperrors.Validation("token query parameter is required")
		}

		price, err := webApp.Prices.USDPriceForToken(c.Context(), int64(chainID), token)
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{
			"chainId": chainID,
			"token":   token,
			"usd":     price,
		})
	}
}
