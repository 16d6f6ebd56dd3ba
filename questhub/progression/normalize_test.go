package progression

import (
	"reflect"
	"testing"
)

func Test_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		check  func(t *testing.T, q CanonicalQuest)
	}{
		{
			name: "snake case with blob image",
			record: map[string]any{
				"reward_pool": "50",
				"imageUrl":    "blob:https://app/1f3a",
			},
			check: func(t *testing.T, q CanonicalQuest) {
				if q.RewardPool != "50" {
					t.Errorf("RewardPool = %q, want %q", q.RewardPool, "50")
				}
				if q.ImageURL != PlaceholderImage {
					t.Errorf("ImageURL = %q, want placeholder", q.ImageURL)
				}
			},
		},
		{
			name: "camel case wins over snake case",
			record: map[string]any{
				"rewardPool":   "200",
				"reward_pool":  "100",
				"tokenAddress": "0xToken",
			},
			check: func(t *testing.T, q CanonicalQuest) {
				if q.RewardPool != "200" {
					t.Errorf("RewardPool = %q, want %q", q.RewardPool, "200")
				}
				if q.TokenAddress != "0xToken" {
					t.Errorf("TokenAddress = %q, want %q", q.TokenAddress, "0xToken")
				}
			},
		},
		{
			name: "numeric values coerce to strings",
			record: map[string]any{
				"rewardPool":       float64(75),
				"claimWindowHours": 72,
			},
			check: func(t *testing.T, q CanonicalQuest) {
				if q.RewardPool != "75" {
					t.Errorf("RewardPool = %q, want %q", q.RewardPool, "75")
				}
				if q.ClaimWindowHours != "72" {
					t.Errorf("ClaimWindowHours = %q, want %q", q.ClaimWindowHours, "72")
				}
			},
		},
		{
			name:   "empty record gets defaults",
			record: map[string]any{},
			check: func(t *testing.T, q CanonicalQuest) {
				if q.ImageURL != PlaceholderImage {
					t.Errorf("ImageURL = %q, want placeholder", q.ImageURL)
				}
				if q.ClaimWindowHours != "168" {
					t.Errorf("ClaimWindowHours = %q, want %q", q.ClaimWindowHours, "168")
				}
				if q.EnforceStageRules {
					t.Error("EnforceStageRules should default to false")
				}
				if q.Distribution.Model != DistributionEqual {
					t.Errorf("Distribution.Model = %q, want %q", q.Distribution.Model, DistributionEqual)
				}
				if q.Distribution.TotalWinners != DefaultTotalWinners {
					t.Errorf("Distribution.TotalWinners = %d, want %d", q.Distribution.TotalWinners, DefaultTotalWinners)
				}
			},
		},
		{
			name: "stage requirements keep known stages only",
			record: map[string]any{
				"stage_pass_requirements": map[string]any{
					"Beginner":     float64(70),
					"Intermediate": "55",
					"Mythic":       float64(99),
					"Advance":      float64(-3),
				},
			},
			check: func(t *testing.T, q CanonicalQuest) {
				want := map[Stage]int{
					StageBeginner:     70,
					StageIntermediate: 55,
					StageAdvance:      0,
					StageLegend:       0,
					StageUltimate:     0,
				}
				if !reflect.DeepEqual(q.StagePassRequirements, want) {
					t.Errorf("StagePassRequirements = %v, want %v", q.StagePassRequirements, want)
				}
			},
		},
		{
			name: "distribution config with tiers",
			record: map[string]any{
				"distributionConfig": map[string]any{
					"model":        "custom_tiers",
					"totalWinners": float64(25),
					"tiers": []any{
						map[string]any{"rankStart": float64(1), "rankEnd": float64(5), "amountPerUser": float64(10)},
						map[string]any{"rank_start": float64(6), "rank_end": float64(25), "amount_per_user": 2.5},
					},
				},
			},
			check: func(t *testing.T, q CanonicalQuest) {
				want := DistributionSpec{
					Model:        DistributionCustomTiers,
					TotalWinners: 25,
					Tiers: []RewardTier{
						{RankStart: 1, RankEnd: 5, AmountPerUser: 10},
						{RankStart: 6, RankEnd: 25, AmountPerUser: 2.5},
					},
				}
				if !reflect.DeepEqual(q.Distribution, want) {
					t.Errorf("Distribution = %+v, want %+v", q.Distribution, want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Normalize(tt.record))
		})
	}
}

func Test_Normalize_Idempotent(t *testing.T) {
	record := map[string]any{
		"title":               "Bridge Week",
		"imageUrl":            "blob:https://app/9c2",
		"reward_pool":         "500",
		"enforceStageRules":   true,
		"claim_window_hours":  "96",
		"distribution_config": map[string]any{"model": "quadratic", "total_winners": float64(10)},
	}

	first := Normalize(record)

	// Re-normalizing a record built from canonical output must not change it.
	roundTrip := map[string]any{
		"title":             first.Title,
		"imageUrl":          first.ImageURL,
		"rewardPool":        first.RewardPool,
		"enforceStageRules": first.EnforceStageRules,
		"claimWindowHours":  first.ClaimWindowHours,
		"distributionConfig": map[string]any{
			"model":        first.Distribution.Model,
			"totalWinners": float64(first.Distribution.TotalWinners),
		},
	}
	second := Normalize(roundTrip)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalize is not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}
