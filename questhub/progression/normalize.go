package progression

import (
	"strconv"
	"strings"
)

// PlaceholderImage replaces missing or non-durable quest image references.
const PlaceholderImage = "https://placehold.co/1280x1280/3b82f6/ffffff?text=Quest+Logo"

// CanonicalQuest is the single shape quest and draft records resolve to.
// Persisted records arrive with either camelCase or snake_case keys for the
// same logical field; nothing past this boundary sees both spellings.
type CanonicalQuest struct {
	Title                 string           `json:"title"`
	Description           string           `json:"description"`
	ImageURL              string           `json:"imageUrl"`
	RewardPool            string           `json:"rewardPool"`
	TokenAddress          string           `json:"tokenAddress"`
	StartDate             string           `json:"startDate"`
	StartTime             string           `json:"startTime"`
	EndDate               string           `json:"endDate"`
	EndTime               string           `json:"endTime"`
	ClaimWindowHours      string           `json:"claimWindowHours"`
	EnforceStageRules     bool             `json:"enforceStageRules"`
	StagePassRequirements map[Stage]int    `json:"stagePassRequirements"`
	Distribution          DistributionSpec `json:"distributionConfig"`
}

// DistributionSpec maps leaderboard ranks to reward amounts.
type DistributionSpec struct {
	Model        string       `json:"model"` // equal, quadratic, custom_tiers
	TotalWinners int          `json:"totalWinners"`
	Tiers        []RewardTier `json:"tiers"`
}

type RewardTier struct {
	RankStart     int     `json:"rankStart"`
	RankEnd       int     `json:"rankEnd"`
	AmountPerUser float64 `json:"amountPerUser"`
}

const (
	DistributionEqual       = "equal"
	DistributionQuadratic   = "quadratic"
	DistributionCustomTiers = "custom_tiers"
)

// Normalize resolves a loose record into the canonical quest shape. The
// camelCase spelling wins, then the snake_case one, then a type-appropriate
// default. A blob: image reference is a client-side temporary object URL that
// cannot be reloaded in a later session, so it is dropped in favour of the
// placeholder.
func Normalize(record map[string]any) CanonicalQuest {
	q := CanonicalQuest{
		Title:            pickString(record, "title", ""),
		Description:      pickString(record, "description", ""),
		ImageURL:         pick2String(record, "imageUrl", "image_url", PlaceholderImage),
		RewardPool:       pick2String(record, "rewardPool", "reward_pool", ""),
		TokenAddress:     pick2String(record, "tokenAddress", "token_address", ""),
		StartDate:        pick2String(record, "startDate", "start_date", ""),
		StartTime:        pick2String(record, "startTime", "start_time", ""),
		EndDate:          pick2String(record, "endDate", "end_date", ""),
		EndTime:          pick2String(record, "endTime", "end_time", ""),
		ClaimWindowHours: pick2String(record, "claimWindowHours", "claim_window_hours", "168"),
	}

	if strings.HasPrefix(q.ImageURL, "blob:") {
		q.ImageURL = PlaceholderImage
	}

	q.EnforceStageRules = pick2Bool(record, "enforceStageRules", "enforce_stage_rules")
	q.StagePassRequirements = pickStageMap(record, "stagePassRequirements", "stage_pass_requirements")
	q.Distribution = pickDistribution(record, "distributionConfig", "distribution_config")
	return q
}

func pick2String(record map[string]any, camel, snake, fallback string) string {
	if v := asString(record[camel]); v != "" {
		return v
	}
	if v := asString(record[snake]); v != "" {
		return v
	}
	return fallback
}

func pickString(record map[string]any, key, fallback string) string {
	if v := asString(record[key]); v != "" {
		return v
	}
	return fallback
}

func pick2Bool(record map[string]any, camel, snake string) bool {
	if b, ok := record[camel].(bool); ok {
		return b
	}
	if b, ok := record[snake].(bool); ok {
		return b
	}
	return false
}

// asString tolerates numeric values for fields the frontend persisted as
// either strings or numbers across platform versions.
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

func asInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case int64:
		return int(val), true
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n, true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func pickStageMap(record map[string]any, camel, snake string) map[Stage]int {
	raw, ok := record[camel].(map[string]any)
	if !ok {
		raw, ok = record[snake].(map[string]any)
	}
	reqs := make(map[Stage]int, len(Stages))
	for _, s := range Stages {
		reqs[s] = 0
	}
	if !ok {
		return reqs
	}
	for key, v := range raw {
		stage := Stage(key)
		if !Valid(stage) {
			continue
		}
		if n, ok := asInt(v); ok && n >= 0 {
			reqs[stage] = n
		}
	}
	return reqs
}

func pickDistribution(record map[string]any, camel, snake string) DistributionSpec {
	raw, ok := record[camel].(map[string]any)
	if !ok {
		raw, ok = record[snake].(map[string]any)
	}
	spec := DistributionSpec{Model: DistributionEqual, TotalWinners: DefaultTotalWinners}
	if !ok {
		return spec
	}
	if m := asString(raw["model"]); m != "" {
		spec.Model = m
	}
	if n, ok := asInt(pickRaw(raw, "totalWinners", "total_winners")); ok && n > 0 {
		spec.TotalWinners = n
	}
	tiers, ok := raw["tiers"].([]any)
	if !ok {
		return spec
	}
	for _, t := range tiers {
		entry, ok := t.(map[string]any)
		if !ok {
			continue
		}
		tier := RewardTier{}
		if n, ok := asInt(pickRaw(entry, "rankStart", "rank_start")); ok {
			tier.RankStart = n
		}
		if n, ok := asInt(pickRaw(entry, "rankEnd", "rank_end")); ok {
			tier.RankEnd = n
		}
		if f, ok := asFloat(pickRaw(entry, "amountPerUser", "amount_per_user")); ok {
			tier.AmountPerUser = f
		}
		spec.Tiers = append(spec.Tiers, tier)
	}
	return spec
}

func pickRaw(record map[string]any, camel, snake string) any {
	if v, ok := record[camel]; ok {
		return v
	}
	return record[snake]
}
