package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/faucetdrop/questhub/questhub/progression"
)

// ParticipantProgress is one wallet's standing inside one quest. Stage points
// and completed task ids are jsonb; current stage is re-derived from them on
// every write so reads never recompute.
type ParticipantProgress struct {
	bun.BaseModel `bun:"table:participant_progress,alias:pp"`

	ID             int64                     `bun:"id,pk,autoincrement"`
	QuestAddress   string                    `bun:"quest_address,notnull"`
	Wallet         string                    `bun:"wallet,notnull"`
	TotalPoints    int                       `bun:"total_points,notnull,default:0"`
	StagePoints    map[progression.Stage]int `bun:"stage_points,type:jsonb"`
	CompletedTasks []string                  `bun:"completed_tasks,type:jsonb"`
	CurrentStage   progression.Stage         `bun:"current_stage,notnull"`
	CreatedAt      time.Time                 `bun:"created_at,notnull"`
	UpdatedAt      time.Time                 `bun:"updated_at,notnull"`
}

// HasCompleted reports whether the participant finished the given task.
func (p *ParticipantProgress) HasCompleted(taskID string) bool {
	for _, id := range p.CompletedTasks {
		if id == taskID {
			return true
		}
	}
	return false
}

// Snapshot projects the row into the shape the status resolver consumes.
func (p *ParticipantProgress) Snapshot(submissions []*TaskSubmission) progression.ProgressSnapshot {
	snap := progression.ProgressSnapshot{
		CompletedTasks: p.CompletedTasks,
		CurrentStage:   p.CurrentStage,
	}
	for _, s := range submissions {
		snap.Submissions = append(snap.Submissions, progression.SubmissionRef{
			TaskID: s.TaskID,
			Status: progression.SubmissionStatus(s.Status),
		})
	}
	return snap
}
