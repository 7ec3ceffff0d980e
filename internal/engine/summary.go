package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/clonebeat/internal/judge"
	"github.com/vovakirdan/clonebeat/internal/lane"
)

// Summary tallies the judged prompts of a run.
type Summary struct {
	Good    int
	Great   int
	Perfect int
	Miss    int

	hits  int
	sum   float64 // press deltas in ms
	sumSq float64
}

// Record adds a judged prompt.
func (s *Summary) Record(r lane.Result) {
	switch r.Tier {
	case judge.TierGood:
		s.Good++
	case judge.TierGreat:
		s.Great++
	case judge.TierPerfect:
		s.Perfect++
	default:
		s.Miss++
		return
	}

	d := float64(r.Delta()) / float64(time.Millisecond)
	s.hits++
	s.sum += d
	s.sumSq += d * d
}

// Hits returns the number of prompts that were pressed in time.
func (s Summary) Hits() int {
	return s.hits
}

// Judged returns the number of prompts with an outcome.
func (s Summary) Judged() int {
	return s.hits + s.Miss
}

// Mean returns the average press offset; positive means late.
func (s Summary) Mean() time.Duration {
	if s.hits == 0 {
		return 0
	}
	return msToDuration(s.sum / float64(s.hits))
}

// StdDev returns the sample standard deviation of the press offsets.
func (s Summary) StdDev() time.Duration {
	if s.hits < 2 {
		return 0
	}
	n := float64(s.hits)
	variance := (s.sumSq - s.sum*s.sum/n) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return msToDuration(math.Sqrt(variance))
}

// String formats the summary on one line.
func (s Summary) String() string {
	return fmt.Sprintf("perfect %d  great %d  good %d  miss %d  mean %+.1fms  stdev %.1fms",
		s.Perfect, s.Great, s.Good, s.Miss,
		float64(s.Mean())/float64(time.Millisecond),
		float64(s.StdDev())/float64(time.Millisecond))
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}
