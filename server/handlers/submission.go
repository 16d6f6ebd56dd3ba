package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

func TaskStatuses(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Query("wallet")
		if wallet == "" {
			return apperrors.Validation("wallet query parameter is required")
		}
		tasks, err := webApp.Submissions.TaskStatuses(c.Context(), c.Params("address"), wallet)
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"tasks": tasks})
	}
}

func SubmissionsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Wallet   string `json:"wallet"`
			TaskID   string `json:"taskId"`
			ProofURL string `json:"proofUrl"`
			Notes    string `json:"notes"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Validation("invalid submission payload: %v", err)
		}
		sub, err := webApp.Submissions.Submit(c.Context(), c.Params("address"), req.Wallet, req.TaskID, req.ProofURL, req.Notes)
		if err != nil {
			return err
		}
		return sendCreated(c, fiber.Map{"submission": sub})
	}
}

func SubmissionsPending(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Query("wallet")
		if wallet == "" {
			return apperrors.Validation("wallet query parameter is required")
		}
		subs, err := webApp.Submissions.PendingReviews(c.Context(), c.Params("address"), wallet)
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{
			"submissions": subs,
			"total":       len(subs),
		})
	}
}

func SubmissionsReview(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Wallet   string `json:"wallet"`
			Decision string `json:"decision"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Validation("invalid review payload: %v", err)
		}
		var approve bool
		switch req.Decision {
		case "approve":
			approve = true
		case "reject":
			approve = false
		default:
			return apperrors.Validation("decision must be approve or reject, got %q", req.Decision)
		}
		sub, err := webApp.Submissions.ReviewSubmission(c.Context(), c.Params("id"), req.Wallet, approve)
		if err != nil {
			return err
		}
		return sendSuccess(c, fiber.Map{"submission": sub})
	}
}
