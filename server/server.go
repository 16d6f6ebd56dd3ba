// Package server wires the HTTP surface: fiber app, middleware chain, and
// the route table over the quest, submission, leaderboard, and profile
// handlers.
package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/faucetdrop/questhub/server/handlers"
	"github.com/faucetdrop/questhub/server/middleware"
)

// New builds the fiber app with the full middleware chain and route table.
func New(webApp *handlers.WebApp, allowOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "QuestHub API",
		ServerHeader: "QuestHub",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	if allowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: allowOrigins,
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept",
		}))
	}
	app.Use(middleware.LoggingMiddleware())

	setupRoutes(app, webApp)
	return app
}

func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	api := app.Group("/api")

	quests := api.Group("/quests")
	quests.Get("/", handlers.QuestsList(webApp))
	quests.Post("/", handlers.QuestsCreate(webApp))
	quests.Get("/:address", handlers.QuestsDetail(webApp))
	quests.Put("/:address", handlers.QuestsUpdate(webApp))
	quests.Post("/:address/fund", handlers.QuestsFund(webApp))
	quests.Get("/:address/tasks/status", handlers.TaskStatuses(webApp))
	quests.Post("/:address/submissions", handlers.SubmissionsCreate(webApp))
	quests.Get("/:address/submissions/pending", handlers.SubmissionsPending(webApp))
	quests.Get("/:address/leaderboard", handlers.LeaderboardDetail(webApp))
	quests.Get("/:address/leaderboard/share-card", handlers.LeaderboardShareCard(webApp))
	quests.Get("/:address/claim-status", handlers.ClaimStatus(webApp))

	api.Put("/submissions/:id", handlers.SubmissionsReview(webApp))

	drafts := api.Group("/drafts")
	drafts.Get("/", handlers.DraftsList(webApp))
	drafts.Post("/", handlers.DraftsSave(webApp))
	drafts.Get("/:id", handlers.DraftsDetail(webApp))
	drafts.Delete("/:id", handlers.DraftsDelete(webApp))

	profile := api.Group("/profile")
	profile.Get("/by-username/:username", handlers.ProfileByUsername(webApp))
	profile.Get("/:wallet", handlers.ProfileByWallet(webApp))
	profile.Put("/:wallet", handlers.ProfileUpsert(webApp))

	api.Post("/upload", handlers.UploadFiles(webApp))
	api.Get("/search", handlers.SearchQuests(webApp))
	api.Get("/price", handlers.TokenPrice(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
		)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"code":    fiber.StatusNotFound,
				"message": "route not found",
			},
		})
	})
}
