package models

import (
	"time"

	"github.com/uptrace/bun"
)

// QuestDraft holds a creator's in-progress quest exactly as the client sent
// it. Payload keys are not canonicalized on write; the normalizer resolves
// mixed spellings on read, which is what lets old drafts keep loading.
type QuestDraft struct {
	bun.BaseModel `bun:"table:quest_drafts,alias:qdr"`

	ID            string         `bun:"id,pk"`
	CreatorWallet string         `bun:"creator_wallet,notnull"`
	Payload       map[string]any `bun:"payload,type:jsonb"`
	CreatedAt     time.Time      `bun:"created_at,notnull"`
	UpdatedAt     time.Time      `bun:"updated_at,notnull"`
}
