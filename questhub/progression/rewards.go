package progression

import (
	"sort"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

// ValidateDistribution checks a distribution config at finalization time.
// Inverted tiers (rankStart > rankEnd) and overlapping rank ranges are
// rejected outright rather than silently double-paying ranks.
func ValidateDistribution(spec DistributionSpec) error {
	switch spec.Model {
	case DistributionEqual, DistributionQuadratic:
		if spec.TotalWinners < 1 {
			return apperrors.Validation("total winners must be at least 1, got %d", spec.TotalWinners)
		}
		return nil
	case DistributionCustomTiers:
	default:
		return apperrors.Validation("unknown distribution model %q", spec.Model)
	}

	if len(spec.Tiers) == 0 {
		return apperrors.Validation("custom tier distribution requires at least one tier")
	}
	tiers := make([]RewardTier, len(spec.Tiers))
	copy(tiers, spec.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].RankStart < tiers[j].RankStart })

	prevEnd := 0
	for _, t := range tiers {
		if t.RankStart < 1 {
			return apperrors.Validation("tier rank start must be at least 1, got %d", t.RankStart)
		}
		if t.RankStart > t.RankEnd {
			return apperrors.Validation("tier ranks inverted: start %d > end %d", t.RankStart, t.RankEnd)
		}
		if t.AmountPerUser < 0 {
			return apperrors.Validation("tier amount must not be negative, got %v", t.AmountPerUser)
		}
		if t.RankStart <= prevEnd {
			return apperrors.Validation("tier ranks overlap at rank %d", t.RankStart)
		}
		prevEnd = t.RankEnd
	}
	return nil
}

// TierPool returns the reward pool implied by a custom tier config: the sum
// of each tier's rank span times its per-user amount.
func TierPool(spec DistributionSpec) float64 {
	var pool float64
	for _, t := range spec.Tiers {
		span := t.RankEnd - t.RankStart + 1
		if span > 0 {
			pool += float64(span) * t.AmountPerUser
		}
	}
	return pool
}

// PayoutForRank computes the reward owed to a leaderboard rank under the
// quest's distribution model. Ranks outside the winner set earn zero.
func PayoutForRank(spec DistributionSpec, pool float64, rank int) (float64, error) {
	if pool < 0 {
		return 0, apperrors.Validation("reward pool must not be negative, got %v", pool)
	}
	if rank < 1 {
		return 0, apperrors.Validation("rank must be 1-based, got %d", rank)
	}

	winners := spec.TotalWinners
	if winners <= 0 {
		winners = DefaultTotalWinners
	}

	switch spec.Model {
	case DistributionEqual:
		if rank > winners {
			return 0, nil
		}
		return pool / float64(winners), nil

	case DistributionQuadratic:
		if rank > winners {
			return 0, nil
		}
		// Weight rank r by (W-r+1)^2 over the sum of squares 1..W, so first
		// place takes the largest quadratic share.
		var sum float64
		for i := 1; i <= winners; i++ {
			sum += float64(i) * float64(i)
		}
		w := float64(winners - rank + 1)
		return pool * (w * w) / sum, nil

	case DistributionCustomTiers:
		for _, t := range spec.Tiers {
			if rank >= t.RankStart && rank <= t.RankEnd {
				return t.AmountPerUser, nil
			}
		}
		return 0, nil

	default:
		return 0, apperrors.Validation("unknown distribution model %q", spec.Model)
	}
}
