package progression

import "math"

// PassRatio is the fixed share of a stage's total points a participant must
// earn to clear it.
const PassRatio = 0.70

// ComputeRequirements derives the points needed to clear each stage from the
// aggregated stage totals: floor(total * PassRatio), or 0 for a stage with no
// points (such a stage is trivially passed). The computation is idempotent;
// calling it twice on the same totals yields identical maps, so reactive
// callers can diff before writing.
func ComputeRequirements(totals map[Stage]int) map[Stage]int {
	reqs := make(map[Stage]int, len(Stages))
	for _, s := range Stages {
		total := totals[s]
		if total > 0 {
			reqs[s] = int(math.Floor(float64(total) * PassRatio))
		} else {
			reqs[s] = 0
		}
	}
	return reqs
}
