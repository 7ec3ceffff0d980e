package engine

import (
	"testing"
	"time"

	"github.com/vovakirdan/clonebeat/internal/judge"
	"github.com/vovakirdan/clonebeat/internal/lane"
)

func TestSummaryRecord(t *testing.T) {
	var s Summary
	s.Record(lane.Result{Lane: 0, Offset: 1000 * ms, At: 990 * ms, Tier: judge.TierGood})
	s.Record(lane.Result{Lane: 1, Offset: 1000 * ms, At: 1300 * ms, Tier: judge.TierPerfect})
	s.Record(lane.Result{Lane: 2, Offset: 1000 * ms, At: 1210 * ms, Tier: judge.TierGreat})
	s.Record(lane.Result{Lane: 3, Offset: 1000 * ms, Tier: judge.TierNone})

	if s.Good != 1 || s.Great != 1 || s.Perfect != 1 || s.Miss != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.Hits() != 3 || s.Judged() != 4 {
		t.Errorf("Hits() = %d, Judged() = %d, expected 3 and 4", s.Hits(), s.Judged())
	}
	// Deltas -10, 300, 210.
	if s.Mean() != 166*ms+666667 {
		t.Errorf("Mean() = %v, expected 166.666667ms", s.Mean())
	}
}

func TestSummaryStdDev(t *testing.T) {
	tests := []struct {
		name   string
		deltas []int
		want   float64
	}{
		{"none", nil, 0},
		{"single", []int{40}, 0},
		{"equal", []int{20, 20, 20}, 0},
		{"spread", []int{0, 100}, 70.710678},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Summary
			for _, d := range tt.deltas {
				s.Record(lane.Result{Offset: 1000 * ms, At: time.Duration(1000+d) * ms, Tier: judge.TierGood})
			}
			got := float64(s.StdDev()) / float64(ms)
			if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
				t.Errorf("StdDev() = %.6fms, expected %.6fms", got, tt.want)
			}
		})
	}
}

func TestSummaryString(t *testing.T) {
	var s Summary
	s.Record(lane.Result{Offset: 1000 * ms, At: 1010 * ms, Tier: judge.TierGood})

	want := "perfect 0  great 0  good 1  miss 0  mean +10.0ms  stdev 0.0ms"
	if s.String() != want {
		t.Errorf("String() = %q, expected %q", s.String(), want)
	}
}
