package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/database/models"
)

type ProfileRepository interface {
	GetByWallet(ctx context.Context, wallet string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	// GetManyByWallet loads profiles for a set of wallets in one query; the
	// leaderboard uses it to decorate entries with usernames.
	GetManyByWallet(ctx context.Context, wallets []string) (map[string]*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	db *bun.DB
}

func NewProfileRepository(db *bun.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByWallet(ctx context.Context, wallet string) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("LOWER(wallet) = LOWER(?)", wallet).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("profile not found: %s", wallet)
		}
		return nil, err
	}

	return profile, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("LOWER(username) = LOWER(?)", username).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("profile not found: %s", username)
		}
		return nil, err
	}

	return profile, nil
}

// GetManyByWallet keys the result map by lowercased wallet; callers fold
// their lookup keys the same way.
func (r *profileRepository) GetManyByWallet(ctx context.Context, wallets []string) (map[string]*models.Profile, error) {
	out := make(map[string]*models.Profile, len(wallets))
	if len(wallets) == 0 {
		return out, nil
	}

	lowered := make([]string, len(wallets))
	for i, w := range wallets {
		lowered[i] = strings.ToLower(w)
	}

	var profiles []*models.Profile
	err := r.db.NewSelect().
		Model(&profiles).
		Where("LOWER(wallet) IN (?)", bun.In(lowered)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		out[strings.ToLower(p.Wallet)] = p
	}
	return out, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(profile).
		On("CONFLICT (wallet) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("avatar_url = EXCLUDED.avatar_url").
		Set("socials = EXCLUDED.socials").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}
