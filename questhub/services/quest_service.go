package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/chain"
	"github.com/faucetdrop/questhub/questhub/database/models"
	"github.com/faucetdrop/questhub/questhub/database/repositories"
	"github.com/faucetdrop/questhub/questhub/logger"
	"github.com/faucetdrop/questhub/questhub/progression"
)

// QuestService owns the quest lifecycle: draft, finalize, post-finalization
// edits, and funding. Structural fields are frozen at finalization; the
// service enforces which mutations remain legal afterwards.
type QuestService struct {
	quests repositories.QuestRepository
	drafts repositories.DraftRepository
	prices *PriceService
	guard  *progression.MutationGuard
	logger *slog.Logger
}

func NewQuestService(quests repositories.QuestRepository, drafts repositories.DraftRepository, prices *PriceService) *QuestService {
	return &QuestService{
		quests: quests,
		drafts: drafts,
		prices: prices,
		guard:  progression.NewMutationGuard(),
		logger: slog.With(slog.String("service", "quest")),
	}
}

// FinalizeQuest validates a fully-specified quest and records it under its
// on-chain contract address. The caller has already deployed through the
// factory; this call is the platform-side commit.
func (s *QuestService) FinalizeQuest(ctx context.Context, quest *models.Quest) (*models.Quest, error) {
	if err := s.validateForFinalize(ctx, quest); err != nil {
		return nil, err
	}

	injectSystemTasks(quest)
	applyDefaultRequirements(quest)

	if quest.ClaimWindowHours <= 0 {
		quest.ClaimWindowHours = progression.DefaultClaimWindowHours
	}
	if quest.ImageURL == "" {
		quest.ImageURL = progression.PlaceholderImage
	}
	quest.Active = true

	if err := s.quests.Create(ctx, quest); err != nil {
		return nil, err
	}

	s.logger.Info("Quest finalized",
		slog.String("address", quest.Address),
		slog.String("creator", quest.CreatorWallet),
		slog.Int64("chain_id", quest.ChainID),
		slog.Int("tasks", len(quest.Tasks)))

	return quest, nil
}

func (s *QuestService) validateForFinalize(ctx context.Context, quest *models.Quest) error {
	if !chain.ValidAddress(quest.Address) {
		return apperrors.Validation("malformed quest address %q", quest.Address)
	}
	if !chain.ValidAddress(quest.CreatorWallet) {
		return apperrors.Validation("malformed creator wallet %q", quest.CreatorWallet)
	}
	if quest.Title == "" {
		return apperrors.Validation("quest title is required")
	}
	if quest.EndDate.IsZero() || quest.StartDate.IsZero() {
		return apperrors.Validation("quest start and end dates are required")
	}
	if !quest.EndDate.After(quest.StartDate) {
		return apperrors.Validation("quest end date must be after start date")
	}

	if _, err := chain.ByChainID(quest.ChainID); err != nil {
		return err
	}
	token, err := chain.TokenByAddress(quest.ChainID, quest.TokenAddress)
	if err != nil {
		return err
	}
	quest.TokenSymbol = token.Symbol
	quest.IsNativeToken = token.IsNative

	if err := progression.ValidateDistribution(quest.Distribution); err != nil {
		return err
	}

	// The pool is valued at the token's current USD price; a pool worth less
	// than the platform minimum cannot be finalized.
	price, err := s.prices.USDPrice(ctx, token.CoinGeckoID)
	if err != nil {
		return err
	}
	check, err := progression.CheckMinimumPool(quest.RewardPool, price)
	if err != nil {
		return err
	}
	switch check {
	case progression.PoolUnset:
		return apperrors.Validation("reward pool is required")
	case progression.PoolBelowMinimum:
		return apperrors.Validation("reward pool is worth less than $%.0f USD", progression.MinPoolUSD)
	}

	return s.validateTasks(quest)
}

func (s *QuestService) validateTasks(quest *models.Quest) error {
	if len(quest.Tasks) == 0 {
		return apperrors.Validation("quest requires at least one task")
	}

	points := make([]progression.TaskPoints, 0, len(quest.Tasks))
	for _, t := range quest.Tasks {
		if t.Title == "" && !t.IsSystem {
			return apperrors.Validation("task title is required")
		}
		points = append(points, progression.TaskPoints{
			ID:     t.ID,
			Stage:  t.Stage,
			Points: t.Points,
		})
	}

	stats, err := progression.Aggregate(points)
	if err != nil {
		return err
	}

	if quest.EnforceStageRules {
		for _, stage := range progression.Stages {
			// A stage with tasks must itself satisfy the ladder, and its
			// own count must fall inside the stage bounds.
			count := stats.Counts[stage]
			if count == 0 {
				continue
			}
			if !progression.IsStageUnlocked(stage, stats.Counts, true) {
				return apperrors.Validation("stage %s has tasks but earlier stages are underfilled", stage)
			}
			bounds := progression.Bounds(stage)
			if count < bounds.Min || count > bounds.Max {
				return apperrors.Validation("stage %s has %d tasks, allowed range is %d-%d",
					stage, count, bounds.Min, bounds.Max)
			}
		}
	}

	return nil
}

// injectSystemTasks adds the referral and daily check-in tasks every quest
// carries. They are idempotent: re-finalizing a payload that already has them
// does not duplicate them.
func injectSystemTasks(quest *models.Quest) {
	have := map[string]bool{}
	for _, t := range quest.Tasks {
		have[t.ID] = true
	}

	if !have[models.SystemTaskReferral] {
		quest.Tasks = append(quest.Tasks, models.Task{
			ID:           models.SystemTaskReferral,
			Title:        "Refer a friend",
			Points:       10,
			Category:     models.CategoryReferral,
			Verification: models.VerifySystemReferral,
			Stage:        progression.StageBeginner,
			IsSystem:     true,
		})
	}
	if !have[models.SystemTaskDaily] {
		quest.Tasks = append(quest.Tasks, models.Task{
			ID:              models.SystemTaskDaily,
			Title:           "Daily check-in",
			Points:          5,
			Category:        models.CategoryGeneral,
			Verification:    models.VerifySystemDaily,
			Stage:           progression.StageBeginner,
			IsSystem:        true,
			RecurrenceHours: 24,
		})
	}
}

// applyDefaultRequirements fills any unset stage pass requirement with the
// fixed ratio of that stage's total points.
func applyDefaultRequirements(quest *models.Quest) {
	points := make([]progression.TaskPoints, 0, len(quest.Tasks))
	for _, t := range quest.Tasks {
		points = append(points, progression.TaskPoints{ID: t.ID, Stage: t.Stage, Points: t.Points})
	}
	stats, err := progression.Aggregate(points)
	if err != nil {
		return
	}
	defaults := progression.ComputeRequirements(stats.Totals)

	if quest.StagePassRequirements == nil {
		quest.StagePassRequirements = defaults
		return
	}
	for stage, req := range defaults {
		if _, ok := quest.StagePassRequirements[stage]; !ok {
			quest.StagePassRequirements[stage] = req
		}
	}
}

func (s *QuestService) GetQuest(ctx context.Context, address string) (*models.Quest, error) {
	return s.quests.GetByAddress(ctx, address)
}

func (s *QuestService) ListQuests(ctx context.Context, creator string) ([]*models.Quest, error) {
	if creator != "" {
		return s.quests.ListByCreator(ctx, creator)
	}
	return s.quests.List(ctx)
}

// UpdateQuest applies the post-finalization edits a creator may still make:
// title, description, image, and the active flag. Everything else is frozen.
func (s *QuestService) UpdateQuest(ctx context.Context, address, callerWallet string, update *models.Quest) (*models.Quest, error) {
	if err := s.guard.Begin(address, progression.StateEditing); err != nil {
		return nil, err
	}
	defer s.guard.End(address)

	quest, err := s.quests.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if !sameWallet(quest.CreatorWallet, callerWallet) {
		return nil, apperrors.Validation("only the quest creator may edit the quest")
	}

	if update.Title != "" {
		quest.Title = update.Title
	}
	if update.Description != "" {
		quest.Description = update.Description
	}
	if update.ImageURL != "" {
		quest.ImageURL = update.ImageURL
	}
	quest.Active = update.Active

	if err := s.quests.UpdateEditable(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

// FundQuest validates the deposit the creator reports having transferred and
// records the quest as funded. The transfer itself happened in the creator's
// wallet; a mismatched amount is rejected before any state changes.
func (s *QuestService) FundQuest(ctx context.Context, address, callerWallet string, amount float64) error {
	if err := s.guard.Begin(address, progression.StateFunding); err != nil {
		return err
	}
	defer s.guard.End(address)

	quest, err := s.quests.GetByAddress(ctx, address)
	if err != nil {
		return err
	}
	if !sameWallet(quest.CreatorWallet, callerWallet) {
		return apperrors.Validation("only the quest creator may fund the quest")
	}
	if quest.Funded {
		return apperrors.Validation("quest %s is already funded", address)
	}

	ok, err := progression.IsValidFundingAmount(amount, quest.RewardPool)
	if err != nil {
		return err
	}
	if !ok {
		_, required, _ := progression.RequiredDeposit(quest.RewardPool)
		return apperrors.Validation("funding amount %v does not match required deposit %v", amount, required)
	}

	if err := s.quests.MarkFunded(ctx, address); err != nil {
		return err
	}

	logger.LogChain("Quest funding recorded",
		slog.String("address", address),
		slog.Int64("chain_id", quest.ChainID),
		slog.String("token", quest.TokenSymbol),
		slog.Float64("amount", amount))
	return nil
}

// SaveDraft stores a loose draft payload, assigning an id on first save.
func (s *QuestService) SaveDraft(ctx context.Context, id, creatorWallet string, payload map[string]any) (*models.QuestDraft, error) {
	if !chain.ValidAddress(creatorWallet) {
		return nil, apperrors.Validation("malformed creator wallet %q", creatorWallet)
	}
	if id == "" {
		id = uuid.NewString()
	} else {
		existing, err := s.drafts.GetByID(ctx, id)
		switch {
		case err == nil:
			if !sameWallet(existing.CreatorWallet, creatorWallet) {
				return nil, apperrors.Validation("draft %s belongs to another creator", id)
			}
		case !apperrors.IsNotFound(err):
			return nil, err
		}
	}

	draft := &models.QuestDraft{
		ID:            id,
		CreatorWallet: creatorWallet,
		Payload:       payload,
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft loads a draft and resolves its payload to the canonical shape.
func (s *QuestService) GetDraft(ctx context.Context, id string) (*models.QuestDraft, progression.CanonicalQuest, error) {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, progression.CanonicalQuest{}, err
	}
	return draft, progression.Normalize(draft.Payload), nil
}

func (s *QuestService) ListDrafts(ctx context.Context, creator string) ([]*models.QuestDraft, error) {
	return s.drafts.ListByCreator(ctx, creator)
}

func (s *QuestService) DeleteDraft(ctx context.Context, id, creator string) error {
	return s.drafts.Delete(ctx, id, creator)
}

func sameWallet(a, b string) bool {
	return strings.EqualFold(a, b)
}
