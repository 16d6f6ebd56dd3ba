package services

import (
	"context"
	"strings"
	"time"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/database/models"
	"github.com/faucetdrop/questhub/questhub/progression"
)

// In-memory repository fakes. They implement just enough semantics for
// service tests: case-insensitive wallets, conditional review updates, and
// upsert-by-key, mirroring the SQL implementations.

type fakeQuestRepo struct {
	quests map[string]*models.Quest
}

func newFakeQuestRepo(quests ...*models.Quest) *fakeQuestRepo {
	r := &fakeQuestRepo{quests: map[string]*models.Quest{}}
	for _, q := range quests {
		r.quests[q.Address] = q
	}
	return r
}

func (r *fakeQuestRepo) Create(_ context.Context, quest *models.Quest) error {
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = time.Now()
	r.quests[quest.Address] = quest
	return nil
}

func (r *fakeQuestRepo) GetByAddress(_ context.Context, address string) (*models.Quest, error) {
	if q, ok := r.quests[address]; ok {
		return q, nil
	}
	return nil, apperrors.NotFound("quest not found: %s", address)
}

func (r *fakeQuestRepo) List(_ context.Context) ([]*models.Quest, error) {
	var out []*models.Quest
	for _, q := range r.quests {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuestRepo) ListByCreator(_ context.Context, creator string) ([]*models.Quest, error) {
	var out []*models.Quest
	for _, q := range r.quests {
		if strings.EqualFold(q.CreatorWallet, creator) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestRepo) UpdateEditable(_ context.Context, quest *models.Quest) error {
	stored, ok := r.quests[quest.Address]
	if !ok {
		return apperrors.NotFound("quest not found: %s", quest.Address)
	}
	stored.Title = quest.Title
	stored.Description = quest.Description
	stored.ImageURL = quest.ImageURL
	stored.Active = quest.Active
	return nil
}

func (r *fakeQuestRepo) MarkFunded(_ context.Context, address string) error {
	q, ok := r.quests[address]
	if !ok {
		return apperrors.NotFound("quest not found: %s", address)
	}
	q.Funded = true
	return nil
}

type fakeProgressRepo struct {
	records     map[string]*models.ParticipantProgress
	submissions map[string]*models.TaskSubmission
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		records:     map[string]*models.ParticipantProgress{},
		submissions: map[string]*models.TaskSubmission{},
	}
}

func progressKey(questAddress, wallet string) string {
	return questAddress + "|" + strings.ToLower(wallet)
}

func (r *fakeProgressRepo) Get(_ context.Context, questAddress, wallet string) (*models.ParticipantProgress, error) {
	return r.records[progressKey(questAddress, wallet)], nil
}

func (r *fakeProgressRepo) Upsert(_ context.Context, progress *models.ParticipantProgress) error {
	r.records[progressKey(progress.QuestAddress, progress.Wallet)] = progress
	return nil
}

func (r *fakeProgressRepo) ListByQuest(_ context.Context, questAddress string) ([]*models.ParticipantProgress, error) {
	var out []*models.ParticipantProgress
	for _, rec := range r.records {
		if rec.QuestAddress == questAddress {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) CreateSubmission(_ context.Context, sub *models.TaskSubmission) error {
	sub.CreatedAt = time.Now()
	r.submissions[sub.ID] = sub
	return nil
}

func (r *fakeProgressRepo) GetSubmission(_ context.Context, id string) (*models.TaskSubmission, error) {
	if s, ok := r.submissions[id]; ok {
		return s, nil
	}
	return nil, apperrors.NotFound("submission not found: %s", id)
}

func (r *fakeProgressRepo) ListSubmissions(_ context.Context, questAddress, wallet string) ([]*models.TaskSubmission, error) {
	var out []*models.TaskSubmission
	for _, s := range r.submissions {
		if s.QuestAddress == questAddress && strings.EqualFold(s.Wallet, wallet) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) ListPendingSubmissions(_ context.Context, questAddress string) ([]*models.TaskSubmission, error) {
	var out []*models.TaskSubmission
	for _, s := range r.submissions {
		if s.QuestAddress == questAddress && s.Status == string(progression.SubmissionPending) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) ReviewSubmission(_ context.Context, id, status string) (*models.TaskSubmission, error) {
	s, ok := r.submissions[id]
	if !ok || s.Status != string(progression.SubmissionPending) {
		return nil, apperrors.Validation("submission %s has already been reviewed", id)
	}
	now := time.Now()
	s.Status = status
	s.ReviewedAt = &now
	return s, nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func newFakeProfileRepo(profiles ...*models.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[string]*models.Profile{}}
	for _, p := range profiles {
		r.profiles[strings.ToLower(p.Wallet)] = p
	}
	return r
}

func (r *fakeProfileRepo) GetByWallet(_ context.Context, wallet string) (*models.Profile, error) {
	if p, ok := r.profiles[strings.ToLower(wallet)]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("profile not found: %s", wallet)
}

func (r *fakeProfileRepo) GetByUsername(_ context.Context, username string) (*models.Profile, error) {
	for _, p := range r.profiles {
		if strings.EqualFold(p.Username, username) {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("profile not found: %s", username)
}

func (r *fakeProfileRepo) GetManyByWallet(_ context.Context, wallets []string) (map[string]*models.Profile, error) {
	out := map[string]*models.Profile{}
	for _, w := range wallets {
		if p, ok := r.profiles[strings.ToLower(w)]; ok {
			out[strings.ToLower(w)] = p
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *models.Profile) error {
	r.profiles[strings.ToLower(profile.Wallet)] = profile
	return nil
}
