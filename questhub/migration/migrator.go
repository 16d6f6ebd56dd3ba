// Package migration imports V2-era quest records from MongoDB into the
// canonical Postgres schema. The legacy documents are loose, mixed-convention
// maps; everything goes through the normalizer before insertion.
package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/faucetdrop/questhub/questhub/database/models"
)

type Migrator struct {
	pgDB      *bun.DB
	mongoDB   *mongo.Database
	batchSize int
	collNames map[string]string
	stats     Stats
}

func NewMigrator(pgDB *bun.DB) *Migrator {
	return &Migrator{
		pgDB:      pgDB,
		batchSize: 500,
		collNames: map[string]string{
			"quests":   "quests",
			"drafts":   "questDrafts",
			"profiles": "profiles",
		},
		stats: Stats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
	}
}

// UseMongo enables direct-from-Mongo migration mode.
func (m *Migrator) UseMongo(client *mongo.Client, dbName string) {
	if client != nil && dbName != "" {
		m.mongoDB = client.Database(dbName)
	}
}

func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// SetCollectionName overrides the source collection for a given kind
// ("quests", "drafts", "profiles").
func (m *Migrator) SetCollectionName(kind, name string) {
	if kind != "" && name != "" {
		m.collNames[kind] = name
	}
}

func (m *Migrator) coll(kind string) *mongo.Collection {
	return m.mongoDB.Collection(m.collNames[kind])
}

// MigrateAll imports quests, drafts, and profiles in that order.
func (m *Migrator) MigrateAll(ctx context.Context) error {
	if m.mongoDB == nil {
		return fmt.Errorf("no mongo database configured, call UseMongo first")
	}

	if err := m.ImportQuests(ctx); err != nil {
		return fmt.Errorf("quest import failed: %w", err)
	}
	if err := m.ImportDrafts(ctx); err != nil {
		return fmt.Errorf("draft import failed: %w", err)
	}
	if err := m.ImportProfiles(ctx); err != nil {
		return fmt.Errorf("profile import failed: %w", err)
	}

	m.logFinalStats()
	return nil
}

// ImportQuests copies finalized quests. Records without a valid contract
// address are unrecoverable and get skipped, not failed.
func (m *Migrator) ImportQuests(ctx context.Context) error {
	cur, err := m.coll("quests").Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("quests collection query failed: %w", err)
	}
	defer cur.Close(ctx)

	table := m.stats.table("quests")
	var batch []*models.Quest
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			table.Skipped++
			continue
		}
		table.Read++

		quest, err := convertQuest(doc)
		if err != nil {
			slog.Warn("Skipping legacy quest",
				slog.String("reason", err.Error()))
			table.Skipped++
			continue
		}
		batch = append(batch, quest)
		if len(batch) >= m.batchSize {
			if err := m.insertQuests(ctx, batch, table); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return m.insertQuests(ctx, batch, table)
	}
	return nil
}

func (m *Migrator) insertQuests(ctx context.Context, batch []*models.Quest, table *TableStats) error {
	res, err := m.pgDB.NewInsert().
		Model(&batch).
		On("CONFLICT (address) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("quest batch insert failed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		table.Imported += n
	}
	return nil
}

func (m *Migrator) ImportDrafts(ctx context.Context) error {
	cur, err := m.coll("drafts").Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("drafts collection query failed: %w", err)
	}
	defer cur.Close(ctx)

	table := m.stats.table("drafts")
	var batch []*models.QuestDraft
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			table.Skipped++
			continue
		}
		table.Read++

		draft, err := convertDraft(doc)
		if err != nil {
			table.Skipped++
			continue
		}
		batch = append(batch, draft)
		if len(batch) >= m.batchSize {
			if err := m.insertDrafts(ctx, batch, table); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return m.insertDrafts(ctx, batch, table)
	}
	return nil
}

func (m *Migrator) insertDrafts(ctx context.Context, batch []*models.QuestDraft, table *TableStats) error {
	res, err := m.pgDB.NewInsert().
		Model(&batch).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("draft batch insert failed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		table.Imported += n
	}
	return nil
}

func (m *Migrator) ImportProfiles(ctx context.Context) error {
	cur, err := m.coll("profiles").Find(ctx, bson.D{})
	if err != nil {
		slog.Warn("Profiles collection not found, skipping")
		return nil
	}
	defer cur.Close(ctx)

	table := m.stats.table("profiles")
	var batch []*models.Profile
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			table.Skipped++
			continue
		}
		table.Read++

		profile, err := convertProfile(doc)
		if err != nil {
			table.Skipped++
			continue
		}
		batch = append(batch, profile)
		if len(batch) >= m.batchSize {
			if err := m.insertProfiles(ctx, batch, table); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return m.insertProfiles(ctx, batch, table)
	}
	return nil
}

func (m *Migrator) insertProfiles(ctx context.Context, batch []*models.Profile, table *TableStats) error {
	res, err := m.pgDB.NewInsert().
		Model(&batch).
		On("CONFLICT (wallet) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("profile batch insert failed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		table.Imported += n
	}
	return nil
}

func (m *Migrator) logFinalStats() {
	for name, table := range m.stats.Tables {
		slog.Info("Import finished",
			slog.String("collection", name),
			slog.Int64("read", table.Read),
			slog.Int64("imported", table.Imported),
			slog.Int64("skipped", table.Skipped),
		)
	}
	slog.Info("Legacy import complete",
		slog.Duration("took", time.Since(m.stats.StartTime)))
}
