package progression

// Stage is one rung of the fixed five-level progression ladder. The ladder
// order is significant: a task in a later stage is invisible to participants
// until every earlier stage has been cleared.
type Stage string

const (
	StageBeginner     Stage = "Beginner"
	StageIntermediate Stage = "Intermediate"
	StageAdvance      Stage = "Advance"
	StageLegend       Stage = "Legend"
	StageUltimate     Stage = "Ultimate"
)

// Stages is the ladder in unlock order.
var Stages = []Stage{StageBeginner, StageIntermediate, StageAdvance, StageLegend, StageUltimate}

// StageBounds is the task-count window a stage must satisfy when strict
// progression mode is enabled during quest creation.
type StageBounds struct {
	Min int
	Max int
}

var stageTaskBounds = map[Stage]StageBounds{
	StageBeginner:     {Min: 2, Max: 10},
	StageIntermediate: {Min: 3, Max: 8},
	StageAdvance:      {Min: 2, Max: 6},
	StageLegend:       {Min: 2, Max: 5},
	StageUltimate:     {Min: 1, Max: 3},
}

// Index returns the 0-based ladder position of s, or -1 for an unknown stage.
func Index(s Stage) int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s names a ladder stage.
func Valid(s Stage) bool {
	return Index(s) >= 0
}

// PreviousStages returns every stage with a lower ladder index than s.
func PreviousStages(s Stage) []Stage {
	idx := Index(s)
	if idx <= 0 {
		return nil
	}
	prev := make([]Stage, idx)
	copy(prev, Stages[:idx])
	return prev
}

// Bounds returns the strict-mode task-count window for s. Unknown stages get
// a zero window, which strict mode treats as "nothing required, nothing
// allowed".
func Bounds(s Stage) StageBounds {
	return stageTaskBounds[s]
}
