package progression

import (
	"reflect"
	"testing"
)

func Test_ComputeRequirements(t *testing.T) {
	tests := []struct {
		name   string
		totals map[Stage]int
		want   map[Stage]int
	}{
		{
			name:   "seventy percent floored",
			totals: map[Stage]int{StageBeginner: 100, StageIntermediate: 99},
			want: map[Stage]int{
				StageBeginner: 70, StageIntermediate: 69, StageAdvance: 0,
				StageLegend: 0, StageUltimate: 0,
			},
		},
		{
			name:   "zero totals yield zero requirements",
			totals: map[Stage]int{},
			want: map[Stage]int{
				StageBeginner: 0, StageIntermediate: 0, StageAdvance: 0,
				StageLegend: 0, StageUltimate: 0,
			},
		},
		{
			name:   "small totals floor to zero",
			totals: map[Stage]int{StageUltimate: 1},
			want: map[Stage]int{
				StageBeginner: 0, StageIntermediate: 0, StageAdvance: 0,
				StageLegend: 0, StageUltimate: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRequirements(tt.totals); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeRequirements() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_ComputeRequirements_Idempotent(t *testing.T) {
	totals := map[Stage]int{StageBeginner: 130, StageAdvance: 401, StageLegend: 7}

	first := ComputeRequirements(totals)
	second := ComputeRequirements(totals)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeRequirements() not idempotent: %v vs %v", first, second)
	}
}
