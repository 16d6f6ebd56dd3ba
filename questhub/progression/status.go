package progression

// TaskStatus is the participant-facing state of a single task.
type TaskStatus string

const (
	TaskCompleted TaskStatus = "completed"
	TaskPending   TaskStatus = "pending"
	TaskLocked    TaskStatus = "locked"
	TaskAvailable TaskStatus = "available"
)

// SubmissionStatus tracks a proof through review.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// ProgressSnapshot is the slice of a participant's progress record needed to
// resolve task statuses.
type ProgressSnapshot struct {
	CompletedTasks []string
	CurrentStage   Stage
	Submissions    []SubmissionRef
}

// SubmissionRef pairs a task with its review state.
type SubmissionRef struct {
	TaskID string
	Status SubmissionStatus
}

// ResolveStatus yields the status of one task for one participant. Check
// order matters: a completed task stays completed even when its stage sits
// above the participant's current stage, and a pending submission beats the
// lock check the same way.
func ResolveStatus(task TaskPoints, progress ProgressSnapshot) TaskStatus {
	for _, id := range progress.CompletedTasks {
		if id == task.ID {
			return TaskCompleted
		}
	}
	for _, sub := range progress.Submissions {
		if sub.TaskID == task.ID && sub.Status == SubmissionPending {
			return TaskPending
		}
	}
	if Index(task.Stage) > Index(progress.CurrentStage) {
		return TaskLocked
	}
	return TaskAvailable
}

// IsStageUnlocked reports whether the creation UI may place tasks into
// targetStage. Without strict progression every stage is open. With it, the
// first stage is always open and any later stage requires every preceding
// stage to hold at least its minimum task count.
func IsStageUnlocked(targetStage Stage, counts map[Stage]int, enforceRules bool) bool {
	if !enforceRules {
		return true
	}
	idx := Index(targetStage)
	if idx <= 0 {
		return true
	}
	for _, prev := range Stages[:idx] {
		if counts[prev] < Bounds(prev).Min {
			return false
		}
	}
	return true
}

// AdvanceStage walks the ladder from the participant's current stage and
// returns the furthest stage whose pass requirement their stage points still
// satisfy. Stage advancement is evaluated on read, never stored as an event,
// so re-running it on unchanged progress is a no-op.
func AdvanceStage(current Stage, stagePoints map[Stage]int, requirements map[Stage]int) Stage {
	idx := Index(current)
	if idx < 0 {
		return StageBeginner
	}
	for idx < len(Stages)-1 {
		stage := Stages[idx]
		if stagePoints[stage] < requirements[stage] {
			break
		}
		idx++
	}
	return Stages[idx]
}
