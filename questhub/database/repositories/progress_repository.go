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

type ProgressRepository interface {
	Get(ctx context.Context, questAddress, wallet string) (*models.ParticipantProgress, error)
	Upsert(ctx context.Context, progress *models.ParticipantProgress) error
	ListByQuest(ctx context.Context, questAddress string) ([]*models.ParticipantProgress, error)

	CreateSubmission(ctx context.Context, sub *models.TaskSubmission) error
	GetSubmission(ctx context.Context, id string) (*models.TaskSubmission, error)
	ListSubmissions(ctx context.Context, questAddress, wallet string) ([]*models.TaskSubmission, error)
	ListPendingSubmissions(ctx context.Context, questAddress string) ([]*models.TaskSubmission, error)
	// ReviewSubmission flips a pending submission to the given status. The
	// status guard in the WHERE clause is what serializes concurrent reviews:
	// the second decision matches zero rows and fails.
	ReviewSubmission(ctx context.Context, id, status string) (*models.TaskSubmission, error)
}

type progressRepository struct {
	db *bun.DB
}

func NewProgressRepository(db *bun.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, questAddress, wallet string) (*models.ParticipantProgress, error) {
	progress := new(models.ParticipantProgress)
	err := r.db.NewSelect().
		Model(progress).
		Where("quest_address = ?", questAddress).
		Where("LOWER(wallet) = LOWER(?)", wallet).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return progress, nil
}

func (r *progressRepository) Upsert(ctx context.Context, progress *models.ParticipantProgress) error {
	now := time.Now()
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = now
	}
	progress.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(progress).
		On("CONFLICT (quest_address, wallet) DO UPDATE").
		Set("total_points = EXCLUDED.total_points").
		Set("stage_points = EXCLUDED.stage_points").
		Set("completed_tasks = EXCLUDED.completed_tasks").
		Set("current_stage = EXCLUDED.current_stage").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}

func (r *progressRepository) ListByQuest(ctx context.Context, questAddress string) ([]*models.ParticipantProgress, error) {
	var progress []*models.ParticipantProgress
	err := r.db.NewSelect().
		Model(&progress).
		Where("quest_address = ?", questAddress).
		Order("total_points DESC").
		Scan(ctx)

	return progress, err
}

func (r *progressRepository) CreateSubmission(ctx context.Context, sub *models.TaskSubmission) error {
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(sub).Exec(ctx)
	return err
}

func (r *progressRepository) GetSubmission(ctx context.Context, id string) (*models.TaskSubmission, error) {
	sub := new(models.TaskSubmission)
	err := r.db.NewSelect().
		Model(sub).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("submission not found: %s", id)
		}
		return nil, err
	}

	return sub, nil
}

func (r *progressRepository) ListSubmissions(ctx context.Context, questAddress, wallet string) ([]*models.TaskSubmission, error) {
	var subs []*models.TaskSubmission
	err := r.db.NewSelect().
		Model(&subs).
		Where("quest_address = ?", questAddress).
		Where("LOWER(wallet) = LOWER(?)", wallet).
		Order("created_at ASC").
		Scan(ctx)

	return subs, err
}

func (r *progressRepository) ListPendingSubmissions(ctx context.Context, questAddress string) ([]*models.TaskSubmission, error) {
	var subs []*models.TaskSubmission
	err := r.db.NewSelect().
		Model(&subs).
		Where("quest_address = ?", questAddress).
		Where("status = ?", "pending").
		Order("created_at ASC").
		Scan(ctx)

	return subs, err
}

func (r *progressRepository) ReviewSubmission(ctx context.Context, id, status string) (*models.TaskSubmission, error) {
	now := time.Now()
	sub := new(models.TaskSubmission)

	res, err := r.db.NewUpdate().
		Model(sub).
		Set("status = ?", status).
		Set("reviewed_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("status = ?", "pending").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperrors.Validation("submission %s has already been reviewed", id)
	}

	return sub, nil
}
