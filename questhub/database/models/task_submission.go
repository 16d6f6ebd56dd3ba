package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TaskSubmission is one proof a participant handed in for a manual task.
// Status moves pending -> approved|rejected exactly once.
type TaskSubmission struct {
	bun.BaseModel `bun:"table:task_submissions,alias:ts"`

	ID           string     `bun:"id,pk"`
	QuestAddress string     `bun:"quest_address,notnull"`
	Wallet       string     `bun:"wallet,notnull"`
	TaskID       string     `bun:"task_id,notnull"`
	Status       string     `bun:"status,notnull,default:'pending'"`
	ProofURL     string     `bun:"proof_url"`
	Notes        string     `bun:"notes"`
	ReviewedAt   *time.Time `bun:"reviewed_at"`
	CreatedAt    time.Time  `bun:"created_at,notnull"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull"`
}
