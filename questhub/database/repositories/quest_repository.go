package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/database/models"
)

type QuestRepository interface {
	Create(ctx context.Context, quest *models.Quest) error
	GetByAddress(ctx context.Context, address string) (*models.Quest, error)
	List(ctx context.Context) ([]*models.Quest, error)
	ListByCreator(ctx context.Context, creator string) ([]*models.Quest, error)
	// UpdateEditable persists the fields that stay creator-editable after
	// finalization; everything structural is frozen.
	UpdateEditable(ctx context.Context, quest *models.Quest) error
	MarkFunded(ctx context.Context, address string) error
}

type questRepository struct {
	db *bun.DB
}

func NewQuestRepository(db *bun.DB) QuestRepository {
	return &questRepository{db: db}
}

func (r *questRepository) Create(ctx context.Context, quest *models.Quest) error {
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(quest).Exec(ctx)
	return err
}

func (r *questRepository) GetByAddress(ctx context.Context, address string) (*models.Quest, error) {
	quest := new(models.Quest)
	err := r.db.NewSelect().
		Model(quest).
		Where("address = ?", address).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("quest not found: %s", address)
		}
		return nil, err
	}

	return quest, nil
}

func (r *questRepository) List(ctx context.Context) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := r.db.NewSelect().
		Model(&quests).
		Order("created_at DESC").
		Scan(ctx)

	return quests, err
}

func (r *questRepository) ListByCreator(ctx context.Context, creator string) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := r.db.NewSelect().
		Model(&quests).
		Where("LOWER(creator_wallet) = LOWER(?)", creator).
		Order("created_at DESC").
		Scan(ctx)

	return quests, err
}

func (r *questRepository) UpdateEditable(ctx context.Context, quest *models.Quest) error {
	quest.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(quest).
		Column("title", "description", "image_url", "active", "updated_at").
		Where("address = ?", quest.Address).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("quest not found: %s", quest.Address)
	}
	return nil
}

func (r *questRepository) MarkFunded(ctx context.Context, address string) error {
	res, err := r.db.NewUpdate().
		Model((*models.Quest)(nil)).
		Set("funded = ?", true).
		Set("updated_at = ?", time.Now()).
		Where("address = ?", address).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("quest not found: %s", address)
	}
	return nil
}
