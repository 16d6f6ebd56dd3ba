package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/faucetdrop/questhub/questhub"
	"github.com/faucetdrop/questhub/questhub/database"
	"github.com/faucetdrop/questhub/questhub/database/repositories"
	"github.com/faucetdrop/questhub/questhub/logger"
	"github.com/faucetdrop/questhub/questhub/services"
	"github.com/faucetdrop/questhub/server"
	"github.com/faucetdrop/questhub/server/handlers"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	slog.Info("Starting QuestHub API",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := questhub.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	slog.Info("Configuration loaded successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err = db.InitializeSchema(ctx); err != nil {
		slog.Error("Schema initialization failed", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Database ready",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	questRepo := repositories.NewQuestRepository(db.BunDB())
	draftRepo := repositories.NewDraftRepository(db.BunDB())
	progressRepo := repositories.NewProgressRepository(db.BunDB())
	profileRepo := repositories.NewProfileRepository(db.BunDB())

	priceService := services.NewPriceService(
		cfg.Oracle.BaseURL,
		cfg.Oracle.CacheSize,
		time.Duration(cfg.Oracle.TTLMinutes)*time.Minute,
	)
	spacesService, err := services.NewSpacesService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.AssetRoot,
	)
	if err != nil {
		slog.Error("Object storage initialization failed", slog.Any("error", err))
		os.Exit(-1)
	}

	webApp := &handlers.WebApp{
		Quests:      services.NewQuestService(questRepo, draftRepo, priceService),
		Submissions: services.NewSubmissionService(questRepo, progressRepo),
		Leaderboard: services.NewLeaderboardService(questRepo, progressRepo, profileRepo),
		Prices:      priceService,
		Spaces:      spacesService,
		Search:      services.NewSearchService(questRepo),
		ShareCards:  services.NewShareCardService(),
		Profiles:    profileRepo,
		Version:     version,
		Commit:      commit,
	}
	webApp.Rewards = services.NewRewardService(questRepo, webApp.Leaderboard)

	app := server.New(webApp, cfg.Web.AllowOrigins)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Listening", slog.String("addr", cfg.Web.Addr))
		if err := app.Listen(cfg.Web.Addr); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	slog.Info("Shutdown complete")
}
