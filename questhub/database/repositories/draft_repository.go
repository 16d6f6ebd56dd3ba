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

type DraftRepository interface {
	Save(ctx context.Context, draft *models.QuestDraft) error
	GetByID(ctx context.Context, id string) (*models.QuestDraft, error)
	ListByCreator(ctx context.Context, creator string) ([]*models.QuestDraft, error)
	Delete(ctx context.Context, id, creator string) error
}

type draftRepository struct {
	db *bun.DB
}

func NewDraftRepository(db *bun.DB) DraftRepository {
	return &draftRepository{db: db}
}

// Save replaces the stored payload wholesale; the draft is whatever the
// client last sent.
func (r *draftRepository) Save(ctx context.Context, draft *models.QuestDraft) error {
	now := time.Now()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(draft).
		On("CONFLICT (id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}

func (r *draftRepository) GetByID(ctx context.Context, id string) (*models.QuestDraft, error) {
	draft := new(models.QuestDraft)
	err := r.db.NewSelect().
		Model(draft).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("draft not found: %s", id)
		}
		return nil, err
	}

	return draft, nil
}

func (r *draftRepository) ListByCreator(ctx context.Context, creator string) ([]*models.QuestDraft, error) {
	var drafts []*models.QuestDraft
	err := r.db.NewSelect().
		Model(&drafts).
		Where("LOWER(creator_wallet) = LOWER(?)", creator).
		Order("updated_at DESC").
		Scan(ctx)

	return drafts, err
}

func (r *draftRepository) Delete(ctx context.Context, id, creator string) error {
	res, err := r.db.NewDelete().
		Model((*models.QuestDraft)(nil)).
		Where("id = ?", id).
		Where("LOWER(creator_wallet) = LOWER(?)", creator).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("draft not found: %s", id)
	}
	return nil
}
