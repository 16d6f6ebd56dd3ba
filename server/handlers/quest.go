package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/database/models"
	"github.com/faucetdrop/questhub/questhub/progression"
)

type questRequest struct {
	Address               string                       `json:"address"`
	Title                 string                       `json:"title"`
	Description           string                       `json:"description"`
	ImageURL              string                       `json:"imageUrl"`
	RewardPool            float64                      `json:"rewardPool"`
	TokenAddress          string                       `json:"tokenAddress"`
	ChainID               int64                        `json:"chainId"`
	Distribution          progression.DistributionSpec `json:"distribution"`
	Tasks                 []models.Task                `json:"tasks"`
	StagePassRequirements map[progression.Stage]int    `json:"stagePassRequirements"`
	EnforceStageRules     bool                         `json:"enforceStageRules"`
	StartDate             time.Time                    `json:"startDate"`
	EndDate               time.Time                    `json:"endDate"`
	ClaimWindowHours      int                          `json:"claimWindowHours"`
	CreatorWallet         string                       `json:"creatorWallet"`
}

func (r *questRequest) toModel() *models.Quest {
	return &models.Quest{
		Address:               r.Address,
		Title:                 r.Title,
		Description:           r.Description,
		ImageURL:              r.ImageURL,
		RewardPool:            r.RewardPool,
		TokenAddress:          r.TokenAddress,
		ChainID:               r.ChainID,
		Distribution:          r.Distribution,
		Tasks:                 r.Tasks,
		StagePassRequirements: r.StagePassRequirements,
		EnforceStageRules:     r.EnforceStageRules,
		StartDate:             r.StartDate,
		EndDate:               r.EndDate,
		ClaimWindowHours:      r.ClaimWindowHours,
		CreatorWallet:         r.CreatorWallet,
	}
}

func QuestsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		quests, err := webApp.Quests.ListQuests(c.Context(), c.Query("creator"))
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{
			"quests": quests,
			"total":  len(quests),
		})
	}
}

func QuestsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		quest, err := webApp.Quests.GetQuest(c.Context(), c.Params("address"))
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"quest": quest})
	}
}

func QuestsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req questRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Validation("invalid quest payload: %v", err)
		}
		quest, err := webApp.Quests.FinalizeQuest(c.Context(), req.toModel())
		if err != nil {
			return err
		}
		return sendCreated(c, fiber.Map{"quest": quest})
	}
}

func QuestsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Wallet      string `json:"wallet"`
			Title       string `json:"title"`
			Description string `json:"description"`
			ImageURL    string `json:"imageUrl"`
			Active      bool   `json:"active"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Validation("invalid update payload: %v", err)
		}
		quest, err := webApp.Quests.UpdateQuest(c.Context(), c.Params("address"), req.Wallet, &models.Quest{
			Title:       req.Title,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Active:      req.Active,
		})
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"quest": quest})
	}
}

func QuestsFund(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Wallet string  `json:"wallet"`
			Amount float64 `json:"amount"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Validation("invalid funding payload: %v", err)
		}
		if err := webApp.Quests.FundQuest(c.Context(), c.Params("address"), req.Wallet, req.Amount); err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"funded": true})
	}
}
