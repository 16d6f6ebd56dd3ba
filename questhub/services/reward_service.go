package services

import (
	"context"
	"time"

	"github.com/faucetdrop/questhub/questhub/database/repositories"
	"github.com/faucetdrop/questhub/questhub/progression"
)

// RewardService answers the claim-status question: where the claim window
// stands, whether the caller ranks inside the winner set, and what their
// payout would be.
type RewardService struct {
	quests      repositories.QuestRepository
	leaderboard *LeaderboardService
}

func NewRewardService(quests repositories.QuestRepository, leaderboard *LeaderboardService) *RewardService {
	return &RewardService{quests: quests, leaderboard: leaderboard}
}

// ClaimStatus is the per-wallet claim view for one quest.
type ClaimStatus struct {
	Phase        progression.ClaimPhase `json:"phase"`
	Rank         int                    `json:"rank,omitempty"`
	TotalWinners int                    `json:"totalWinners"`
	Claimable    bool                   `json:"claimable"`
	RewardAmount float64                `json:"rewardAmount"`
	TokenSymbol  string                 `json:"tokenSymbol"`
	WindowEndsAt time.Time              `json:"windowEndsAt"`
}

// ClaimStatusFor evaluates claim eligibility for one wallet right now.
func (s *RewardService) ClaimStatusFor(ctx context.Context, questAddress, wallet string) (*ClaimStatus, error) {
	quest, err := s.quests.GetByAddress(ctx, questAddress)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	phase, err := progression.ClaimState(quest.EndDate, quest.ClaimWindowHours, now)
	if err != nil {
		return nil, err
	}

	winners := quest.Distribution.TotalWinners
	if winners <= 0 {
		winners = progression.DefaultTotalWinners
	}
	windowHours := quest.ClaimWindowHours
	if windowHours <= 0 {
		windowHours = progression.DefaultClaimWindowHours
	}

	status := &ClaimStatus{
		Phase:        phase,
		TotalWinners: winners,
		TokenSymbol:  quest.TokenSymbol,
		WindowEndsAt: quest.EndDate.Add(time.Duration(windowHours) * time.Hour),
	}

	entry, err := s.leaderboard.EntryFor(ctx, questAddress, wallet)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return status, nil
	}

	status.Rank = entry.Rank
	status.Claimable = progression.CanClaim(progression.WinnerSnapshot{
		Rank:   entry.Rank,
		Wallet: entry.Wallet,
	}, winners, phase, wallet)

	if status.Claimable || entry.Rank <= winners {
		amount, err := progression.PayoutForRank(quest.Distribution, quest.RewardPool, entry.Rank)
		if err != nil {
			return nil, err
		}
		status.RewardAmount = amount
	}

	return status, nil
}
