package progression

import (
	"math"
	"strings"
	"time"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

const (
	// PlatformFeeRate is charged on top of the declared reward pool.
	PlatformFeeRate = 0.05

	// FundingTolerance absorbs decimal rounding when comparing a proposed
	// deposit against the required amount.
	FundingTolerance = 0.0001

	// MinPoolUSD is the smallest reward pool the platform accepts, in USD.
	MinPoolUSD = 50.0

	// DefaultClaimWindowHours applies when a quest never set its own window.
	DefaultClaimWindowHours = 168

	// DefaultTotalWinners applies when a distribution config omits the count.
	DefaultTotalWinners = 100
)

// RequiredDeposit returns the platform fee and the total a creator must
// transfer to fund a quest with the given reward pool.
func RequiredDeposit(rewardPool float64) (fee, total float64, err error) {
	if rewardPool < 0 {
		return 0, 0, apperrors.Validation("reward pool must not be negative, got %v", rewardPool)
	}
	fee = rewardPool * PlatformFeeRate
	return fee, rewardPool + fee, nil
}

// IsValidFundingAmount reports whether input matches the required pool plus
// fee within FundingTolerance. Anything outside the window, under- or
// over-paying, is rejected.
func IsValidFundingAmount(input, rewardPool float64) (bool, error) {
	if input < 0 {
		return false, apperrors.Validation("funding amount must not be negative, got %v", input)
	}
	_, total, err := RequiredDeposit(rewardPool)
	if err != nil {
		return false, err
	}
	return math.Abs(input-total) < FundingTolerance, nil
}

// PoolCheck is the outcome of the creation-time minimum-pool validation.
type PoolCheck int

const (
	// PoolUnset means the pool is still zero: the draft is incomplete, not
	// undersized.
	PoolUnset PoolCheck = iota
	PoolBelowMinimum
	PoolOK
)

// CheckMinimumPool values the pool at the token's USD unit price and flags
// pools worth less than MinPoolUSD. A zero pool is reported as unset so the
// caller can distinguish "not entered yet" from "entered too low".
func CheckMinimumPool(poolAmount, usdPrice float64) (PoolCheck, error) {
	if poolAmount < 0 {
		return PoolUnset, apperrors.Validation("pool amount must not be negative, got %v", poolAmount)
	}
	if usdPrice < 0 {
		return PoolUnset, apperrors.Validation("token price must not be negative, got %v", usdPrice)
	}
	if poolAmount == 0 {
		return PoolUnset, nil
	}
	usd := poolAmount * usdPrice
	if usd > 0 && usd < MinPoolUSD {
		return PoolBelowMinimum, nil
	}
	return PoolOK, nil
}

// ClaimPhase is the 3-way state of a quest's claim window.
type ClaimPhase string

const (
	PhaseQuestActive ClaimPhase = "Quest active"
	PhaseClaimLive   ClaimPhase = "Claim Live"
	PhaseClaimEnded  ClaimPhase = "Claim ended"
)

// ClaimState places now relative to the quest's end and claim window. A
// non-positive window falls back to DefaultClaimWindowHours.
func ClaimState(endDate time.Time, claimWindowHours int, now time.Time) (ClaimPhase, error) {
	if endDate.IsZero() {
		return PhaseQuestActive, apperrors.Validation("quest end date is not set")
	}
	if claimWindowHours <= 0 {
		claimWindowHours = DefaultClaimWindowHours
	}
	windowEnd := endDate.Add(time.Duration(claimWindowHours) * time.Hour)
	switch {
	case now.Before(endDate):
		return PhaseQuestActive, nil
	case now.After(windowEnd):
		return PhaseClaimEnded, nil
	default:
		return PhaseClaimLive, nil
	}
}

// WinnerSnapshot is the slice of a leaderboard entry claim eligibility needs.
type WinnerSnapshot struct {
	Rank   int
	Wallet string
}

// CanClaim reports whether the entry may claim a reward right now: the claim
// window must be live, the rank must fall inside the winner count, and the
// caller must be the ranked wallet. The quest creator is excluded from the
// leaderboard upstream and so never reaches this check.
func CanClaim(entry WinnerSnapshot, totalWinners int, phase ClaimPhase, callerWallet string) bool {
	if phase != PhaseClaimLive {
		return false
	}
	if totalWinners <= 0 {
		totalWinners = DefaultTotalWinners
	}
	if entry.Rank < 1 || entry.Rank > totalWinners {
		return false
	}
	return strings.EqualFold(entry.Wallet, callerWallet)
}
