package services

import (
	"context"
	"sort"
	"strings"

	"github.com/faucetdrop/questhub/questhub/database/models"
	"github.com/faucetdrop/questhub/questhub/database/repositories"
	"github.com/faucetdrop/questhub/questhub/progression"
)

// LeaderboardService projects participant progress into a ranked leaderboard.
// Ranking is derived at query time; nothing is stored.
type LeaderboardService struct {
	quests   repositories.QuestRepository
	progress repositories.ProgressRepository
	profiles repositories.ProfileRepository
}

func NewLeaderboardService(quests repositories.QuestRepository, progress repositories.ProgressRepository, profiles repositories.ProfileRepository) *LeaderboardService {
	return &LeaderboardService{
		quests:   quests,
		progress: progress,
		profiles: profiles,
	}
}

// Leaderboard returns the ranked entries for a quest: every participant with
// points, creator excluded, ordered by points, then completed-task count,
// then wallet. The wallet tiebreak keeps equal scores in a stable order
// across refreshes.
func (s *LeaderboardService) Leaderboard(ctx context.Context, questAddress string) ([]*models.LeaderboardEntry, error) {
	quest, err := s.quests.GetByAddress(ctx, questAddress)
	if err != nil {
		return nil, err
	}

	records, err := s.progress.ListByQuest(ctx, questAddress)
	if err != nil {
		return nil, err
	}

	var entries []*models.LeaderboardEntry
	var wallets []string
	for _, rec := range records {
		if rec.TotalPoints <= 0 {
			continue
		}
		if sameWallet(rec.Wallet, quest.CreatorWallet) {
			continue
		}
		entries = append(entries, &models.LeaderboardEntry{
			Wallet:         rec.Wallet,
			TotalPoints:    rec.TotalPoints,
			CompletedTasks: len(rec.CompletedTasks),
			CurrentStage:   string(rec.CurrentStage),
		})
		wallets = append(wallets, rec.Wallet)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].CompletedTasks != entries[j].CompletedTasks {
			return entries[i].CompletedTasks > entries[j].CompletedTasks
		}
		return strings.ToLower(entries[i].Wallet) < strings.ToLower(entries[j].Wallet)
	})

	profiles, err := s.profiles.GetManyByWallet(ctx, wallets)
	if err != nil {
		return nil, err
	}

	for i, e := range entries {
		e.Rank = i + 1
		if p, ok := profiles[strings.ToLower(e.Wallet)]; ok {
			e.Username = p.Username
		}
		if amount, err := progression.PayoutForRank(quest.Distribution, quest.RewardPool, e.Rank); err == nil {
			e.RewardAmount = amount
		}
	}

	return entries, nil
}

// EntryFor finds one wallet's leaderboard entry, or nil when the wallet has
// no ranked position.
func (s *LeaderboardService) EntryFor(ctx context.Context, questAddress, wallet string) (*models.LeaderboardEntry, error) {
	entries, err := s.Leaderboard(ctx, questAddress)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if sameWallet(e.Wallet, wallet) {
			return e, nil
		}
	}
	return nil, nil
}
