package progression

import (
	"github.com/faucetdrop/questhub/questhub/apperrors"
)

// TaskPoints is the slice of a task the aggregator and resolver care about.
type TaskPoints struct {
	ID     string
	Stage  Stage
	Points int
}

// StageStats holds per-stage point totals and task counts for one quest.
// Stages with no tasks are present with zero values so callers can range
// over the full ladder without nil checks.
type StageStats struct {
	Totals map[Stage]int
	Counts map[Stage]int
}

// Aggregate sums task points and counts per stage. The result is independent
// of task order. A task with an unknown stage is a validation error; a task
// with negative points likewise (the original records sometimes carry blank
// point fields, which callers must map to zero before reaching here).
func Aggregate(tasks []TaskPoints) (StageStats, error) {
	stats := StageStats{
		Totals: make(map[Stage]int, len(Stages)),
		Counts: make(map[Stage]int, len(Stages)),
	}
	for _, s := range Stages {
		stats.Totals[s] = 0
		stats.Counts[s] = 0
	}

	for _, t := range tasks {
		if !Valid(t.Stage) {
			return StageStats{}, apperrors.Validation("task %q has unknown stage %q", t.ID, t.Stage)
		}
		if t.Points < 0 {
			return StageStats{}, apperrors.Validation("task %q has negative points %d", t.ID, t.Points)
		}
		stats.Totals[t.Stage] += t.Points
		stats.Counts[t.Stage]++
	}
	return stats, nil
}
