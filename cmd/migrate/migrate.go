// Command migrate is the one-shot importer for V2-era quest records. It
// connects to the legacy MongoDB, normalizes every document, and writes
// canonical rows into Postgres. Safe to re-run: existing rows are kept.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/faucetdrop/questhub/questhub"
	"github.com/faucetdrop/questhub/questhub/database"
	"github.com/faucetdrop/questhub/questhub/logger"
	"github.com/faucetdrop/questhub/questhub/migration"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	path := flag.String("config", "config.toml", "path to config")
	batchSize := flag.Int("batch-size", 500, "insert batch size")
	flag.Parse()

	cfg, err := questhub.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Legacy.MongoURI == "" || cfg.Legacy.MongoDatabase == "" {
		slog.Error("Legacy mongo_uri and mongo_database must be set in [legacy]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Failed to connect to Postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err = db.InitializeSchema(ctx); err != nil {
		slog.Error("Schema initialization failed", slog.Any("error", err))
		os.Exit(1)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Legacy.MongoURI))
	if err != nil {
		slog.Error("Failed to connect to legacy MongoDB", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Warn("Mongo disconnect failed", slog.Any("error", err))
		}
	}()

	migrator := migration.NewMigrator(db.BunDB())
	migrator.UseMongo(client, cfg.Legacy.MongoDatabase)
	migrator.SetBatchSize(*batchSize)

	if err := migrator.MigrateAll(ctx); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Migration completed successfully")
}
