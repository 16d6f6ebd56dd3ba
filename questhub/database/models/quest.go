package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/faucetdrop/questhub/questhub/progression"
)

// Quest is a finalized quest. Address is the on-chain contract address the
// factory returned at finalization and is the public identifier everywhere.
type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID                    int64                        `bun:"id,pk,autoincrement"`
	Address               string                       `bun:"address,notnull,unique"`
	Title                 string                       `bun:"title,notnull"`
	Description           string                       `bun:"description"`
	ImageURL              string                       `bun:"image_url,notnull"`
	RewardPool            float64                      `bun:"reward_pool,notnull,default:0"`
	TokenAddress          string                       `bun:"token_address,notnull"`
	TokenSymbol           string                       `bun:"token_symbol,notnull"`
	IsNativeToken         bool                         `bun:"is_native_token,notnull,default:false"`
	ChainID               int64                        `bun:"chain_id,notnull"`
	Distribution          progression.DistributionSpec `bun:"distribution,type:jsonb"`
	Tasks                 []Task                       `bun:"tasks,type:jsonb"`
	StagePassRequirements map[progression.Stage]int    `bun:"stage_pass_requirements,type:jsonb"`
	EnforceStageRules     bool                         `bun:"enforce_stage_rules,notnull,default:false"`
	StartDate             time.Time                    `bun:"start_date,notnull"`
	EndDate               time.Time                    `bun:"end_date,notnull"`
	ClaimWindowHours      int                          `bun:"claim_window_hours,notnull,default:168"`
	Funded                bool                         `bun:"funded,notnull,default:false"`
	Active                bool                         `bun:"active,notnull,default:true"`
	CreatorWallet         string                       `bun:"creator_wallet,notnull"`
	CreatedAt             time.Time                    `bun:"created_at,notnull"`
	UpdatedAt             time.Time                    `bun:"updated_at,notnull"`
}

// Task lives inside a quest's jsonb task list; tasks have no table of their
// own because they are frozen at finalization.
type Task struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Points          int               `json:"points"`
	Category        string            `json:"category"`
	Verification    string            `json:"verification"`
	Stage           progression.Stage `json:"stage"`
	Required        bool              `json:"required"`
	IsSystem        bool              `json:"isSystem"`
	RecurrenceHours int               `json:"recurrenceHours"`
}

// Task category constants
const (
	CategorySocial   = "social"
	CategoryTrading  = "trading"
	CategorySwap     = "swap"
	CategoryReferral = "referral"
	CategoryContent  = "content"
	CategoryGeneral  = "general"
)

// Verification kind constants
const (
	VerifyAutoSocial     = "auto_social"
	VerifyAutoTx         = "auto_tx"
	VerifyManualLink     = "manual_link"
	VerifyManualUpload   = "manual_upload"
	VerifySystemReferral = "system_referral"
	VerifySystemDaily    = "system_daily"
	VerifyNone           = "none"
)

// System task ids injected at creation; participants cannot submit proofs for
// these and creators cannot remove them.
const (
	SystemTaskReferral = "sys_referral"
	SystemTaskDaily    = "sys_daily"
)
