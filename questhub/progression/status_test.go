package progression

import "testing"

func Test_ResolveStatus(t *testing.T) {
	tests := []struct {
		name     string
		task     TaskPoints
		progress ProgressSnapshot
		want     TaskStatus
	}{
		{
			name: "completed wins over pending and lock",
			task: TaskPoints{ID: "t1", Stage: StageUltimate},
			progress: ProgressSnapshot{
				CompletedTasks: []string{"t1"},
				CurrentStage:   StageBeginner,
				Submissions:    []SubmissionRef{{TaskID: "t1", Status: SubmissionPending}},
			},
			want: TaskCompleted,
		},
		{
			name: "pending wins over lock",
			task: TaskPoints{ID: "t2", Stage: StageLegend},
			progress: ProgressSnapshot{
				CurrentStage: StageBeginner,
				Submissions:  []SubmissionRef{{TaskID: "t2", Status: SubmissionPending}},
			},
			want: TaskPending,
		},
		{
			name: "rejected submission does not block availability",
			task: TaskPoints{ID: "t3", Stage: StageBeginner},
			progress: ProgressSnapshot{
				CurrentStage: StageBeginner,
				Submissions:  []SubmissionRef{{TaskID: "t3", Status: SubmissionRejected}},
			},
			want: TaskAvailable,
		},
		{
			name:     "future stage locked",
			task:     TaskPoints{ID: "t4", Stage: StageIntermediate},
			progress: ProgressSnapshot{CurrentStage: StageBeginner},
			want:     TaskLocked,
		},
		{
			name:     "current stage available",
			task:     TaskPoints{ID: "t5", Stage: StageBeginner},
			progress: ProgressSnapshot{CurrentStage: StageBeginner},
			want:     TaskAvailable,
		},
		{
			name:     "earlier stage stays available",
			task:     TaskPoints{ID: "t6", Stage: StageBeginner},
			progress: ProgressSnapshot{CurrentStage: StageAdvance},
			want:     TaskAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStatus(tt.task, tt.progress); got != tt.want {
				t.Errorf("ResolveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_IsStageUnlocked(t *testing.T) {
	tests := []struct {
		name    string
		target  Stage
		counts  map[Stage]int
		enforce bool
		want    bool
	}{
		{
			name:    "rules off unlocks everything",
			target:  StageUltimate,
			counts:  map[Stage]int{},
			enforce: false,
			want:    true,
		},
		{
			name:    "first stage always open",
			target:  StageBeginner,
			counts:  map[Stage]int{},
			enforce: true,
			want:    true,
		},
		{
			name:    "beginner below minimum blocks intermediate",
			target:  StageIntermediate,
			counts:  map[Stage]int{StageBeginner: 1},
			enforce: true,
			want:    false,
		},
		{
			name:    "beginner at minimum opens intermediate",
			target:  StageIntermediate,
			counts:  map[Stage]int{StageBeginner: 2},
			enforce: true,
			want:    true,
		},
		{
			name:    "every preceding stage must meet its minimum",
			target:  StageLegend,
			counts:  map[Stage]int{StageBeginner: 2, StageIntermediate: 3, StageAdvance: 1},
			enforce: true,
			want:    false,
		},
		{
			name:    "full ladder satisfied",
			target:  StageUltimate,
			counts:  map[Stage]int{StageBeginner: 2, StageIntermediate: 3, StageAdvance: 2, StageLegend: 2},
			enforce: true,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStageUnlocked(tt.target, tt.counts, tt.enforce); got != tt.want {
				t.Errorf("IsStageUnlocked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_AdvanceStage(t *testing.T) {
	reqs := map[Stage]int{
		StageBeginner: 70, StageIntermediate: 100, StageAdvance: 0,
		StageLegend: 50, StageUltimate: 0,
	}

	tests := []struct {
		name    string
		current Stage
		points  map[Stage]int
		want    Stage
	}{
		{
			name:    "below requirement stays",
			current: StageBeginner,
			points:  map[Stage]int{StageBeginner: 69},
			want:    StageBeginner,
		},
		{
			name:    "meets requirement advances one",
			current: StageBeginner,
			points:  map[Stage]int{StageBeginner: 70},
			want:    StageIntermediate,
		},
		{
			name:    "zero-requirement stage is passed through",
			current: StageIntermediate,
			points:  map[Stage]int{StageIntermediate: 100},
			want:    StageLegend,
		},
		{
			name:    "ladder top does not advance further",
			current: StageUltimate,
			points:  map[Stage]int{StageUltimate: 9999},
			want:    StageUltimate,
		},
		{
			name:    "unknown current resets to beginner",
			current: Stage(""),
			points:  map[Stage]int{},
			want:    StageBeginner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdvanceStage(tt.current, tt.points, reqs); got != tt.want {
				t.Errorf("AdvanceStage() = %v, want %v", got, tt.want)
			}
		})
	}
}
