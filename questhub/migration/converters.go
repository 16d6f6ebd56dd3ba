package migration

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/faucetdrop/questhub/questhub/chain"
	"github.com/faucetdrop/questhub/questhub/database/models"
	"github.com/faucetdrop/questhub/questhub/progression"
)

// convertQuest maps one legacy quest document onto the canonical model. The
// normalizer handles the camelCase/snake_case split; identity fields the
// canonical shape does not carry (address, creator, chain, tasks) are picked
// here directly.
func convertQuest(doc map[string]any) (*models.Quest, error) {
	doc = plainMap(doc)
	canonical := progression.Normalize(doc)

	address := str2(doc, "address", "quest_address")
	if !chain.ValidAddress(address) {
		return nil, fmt.Errorf("invalid quest address %q", address)
	}
	creator := str2(doc, "creatorWallet", "creator_wallet")
	if !chain.ValidAddress(creator) {
		return nil, fmt.Errorf("quest %s has invalid creator wallet %q", address, creator)
	}

	rewardPool, _ := strconv.ParseFloat(canonical.RewardPool, 64)
	claimWindow, err := strconv.Atoi(canonical.ClaimWindowHours)
	if err != nil || claimWindow <= 0 {
		claimWindow = progression.DefaultClaimWindowHours
	}

	startDate, err := parseLegacyDate(canonical.StartDate, canonical.StartTime)
	if err != nil {
		return nil, fmt.Errorf("quest %s has unparseable start date: %w", address, err)
	}
	endDate, err := parseLegacyDate(canonical.EndDate, canonical.EndTime)
	if err != nil {
		return nil, fmt.Errorf("quest %s has unparseable end date: %w", address, err)
	}

	chainID, ok := int64Val(pick2(doc, "chainId", "chain_id"))
	if !ok {
		return nil, fmt.Errorf("quest %s has no chain id", address)
	}

	now := time.Now()
	return &models.Quest{
		Address:               address,
		Title:                 canonical.Title,
		Description:           canonical.Description,
		ImageURL:              canonical.ImageURL,
		RewardPool:            rewardPool,
		TokenAddress:          canonical.TokenAddress,
		TokenSymbol:           str2(doc, "tokenSymbol", "token_symbol"),
		IsNativeToken:         boolVal(pick2(doc, "isNativeToken", "is_native_token")),
		ChainID:               chainID,
		Distribution:          canonical.Distribution,
		Tasks:                 convertTasks(doc["tasks"]),
		StagePassRequirements: canonical.StagePassRequirements,
		EnforceStageRules:     canonical.EnforceStageRules,
		StartDate:             startDate,
		EndDate:               endDate,
		ClaimWindowHours:      claimWindow,
		Funded:                boolVal(pick2(doc, "funded", "is_funded")),
		Active:                activeOrDefault(doc),
		CreatorWallet:         creator,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

func convertTasks(v any) []models.Task {
	items, ok := asSlice(v)
	if !ok {
		return nil
	}
	tasks := make([]models.Task, 0, len(items))
	for _, item := range items {
		raw, ok := asMap(item)
		if !ok {
			continue
		}
		stage := progression.Stage(str2(raw, "stage", "task_stage"))
		if !progression.Valid(stage) {
			stage = progression.StageBeginner
		}
		points, _ := intVal(pick2(raw, "points", "task_points"))
		recurrence, _ := intVal(pick2(raw, "recurrenceHours", "recurrence_hours"))
		tasks = append(tasks, models.Task{
			ID:              str2(raw, "id", "task_id"),
			Title:           str2(raw, "title", "task_title"),
			Description:     str(raw["description"]),
			Points:          points,
			Category:        str(raw["category"]),
			Verification:    str2(raw, "verification", "verification_type"),
			Stage:           stage,
			Required:        boolVal(raw["required"]),
			IsSystem:        boolVal(pick2(raw, "isSystem", "is_system")),
			RecurrenceHours: recurrence,
		})
	}
	return tasks
}

// convertDraft keeps the whole legacy document as the loose payload so the
// normalizer can resolve it again at read time, exactly as for new drafts.
func convertDraft(doc map[string]any) (*models.QuestDraft, error) {
	doc = plainMap(doc)
	creator := str2(doc, "creatorWallet", "creator_wallet")
	if !chain.ValidAddress(creator) {
		return nil, fmt.Errorf("draft has invalid creator wallet %q", creator)
	}

	id := str2(doc, "id", "draft_id")
	if id == "" {
		id = uuid.NewString()
	}
	payload := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		payload[k] = v
	}

	now := time.Now()
	return &models.QuestDraft{
		ID:            id,
		CreatorWallet: creator,
		Payload:       payload,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func convertProfile(doc map[string]any) (*models.Profile, error) {
	doc = plainMap(doc)
	wallet := str2(doc, "wallet", "wallet_address")
	if !chain.ValidAddress(wallet) {
		return nil, fmt.Errorf("profile has invalid wallet %q", wallet)
	}
	username := str(doc["username"])
	if username == "" {
		return nil, fmt.Errorf("profile %s has no username", wallet)
	}

	socials := map[string]string{}
	if raw, ok := asMap(doc["socials"]); ok {
		for k, v := range raw {
			if s := str(v); s != "" {
				socials[k] = s
			}
		}
	}

	now := time.Now()
	return &models.Profile{
		Wallet:    wallet,
		Username:  username,
		AvatarURL: str2(doc, "avatarUrl", "avatar_url"),
		Socials:   socials,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Legacy documents carry dates either as RFC3339 stamps or as separate
// "2006-01-02" date and "15:04" time fields.
func parseLegacyDate(date, clock string) (time.Time, error) {
	if date == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t, nil
	}
	if clock == "" {
		clock = "00:00"
	}
	return time.Parse("2006-01-02 15:04", date+" "+clock)
}

func activeOrDefault(doc map[string]any) bool {
	if v, ok := pick2(doc, "active", "is_active").(bool); ok {
		return v
	}
	return true
}

func pick2(doc map[string]any, camel, snake string) any {
	if v, ok := doc[camel]; ok && v != nil {
		return v
	}
	return doc[snake]
}

func str2(doc map[string]any, camel, snake string) string {
	if s := str(doc[camel]); s != "" {
		return s
	}
	return str(doc[snake])
}

// BSON numerics decode as int32/int64/float64 depending on how the original
// driver stored them, so every scalar reader tolerates all three.
func str(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

func intVal(v any) (int, bool) {
	switch val := v.(type) {
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case int:
		return val, true
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n, true
		}
	}
	return 0, false
}

func int64Val(v any) (int64, bool) {
	if n, ok := intVal(v); ok {
		return int64(n), true
	}
	return 0, false
}

func boolVal(v any) bool {
	b, _ := v.(bool)
	return b
}

// plainMap rewrites nested bson container types into plain maps and slices so
// type assertions downstream (the normalizer in particular) see the shapes
// encoding/json would have produced.
func plainMap(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch val := v.(type) {
	case primitive.M:
		return plainMap(map[string]any(val))
	case map[string]any:
		return plainMap(val)
	case primitive.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	case int32:
		return int64(val)
	default:
		return v
	}
}

func asSlice(v any) ([]any, bool) {
	switch val := v.(type) {
	case primitive.A:
		return []any(val), true
	case []any:
		return val, true
	}
	return nil, false
}

func asMap(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case primitive.M:
		return map[string]any(val), true
	case map[string]any:
		return val, true
	}
	return nil, false
}
