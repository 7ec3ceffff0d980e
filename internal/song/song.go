// Package song holds the song script model: typed events, the playability
// validator and the loaders for the human-editable script formats.
package song

import (
	"sort"
	"time"
)

const (
	// LaneCount is the number of lanes on the 4x4 grid.
	LaneCount = 16
	// MaxLane is the highest valid lane id.
	MaxLane = LaneCount - 1
)

// Event is a scripted prompt: the player must hit Lane at Offset milliseconds
// after the song starts.
type Event struct {
	Lane   int
	Offset int
}

// At returns the event offset as a duration.
func (e Event) At() time.Duration {
	return time.Duration(e.Offset) * time.Millisecond
}

// Song is a parsed song script. It is never mutated after loading.
type Song struct {
	Title  string
	Artist string
	Events []Event
	Path   string
}

// Length returns the offset of the last scripted event.
func (s *Song) Length() time.Duration {
	last := 0
	for _, e := range s.Events {
		if e.Offset > last {
			last = e.Offset
		}
	}
	return time.Duration(last) * time.Millisecond
}

// Offsets returns each lane's scripted offsets in ascending order.
// Lanes outside [0, MaxLane] are skipped; validate the song first.
func (s *Song) Offsets() [LaneCount][]int {
	return laneOffsets(s.Events)
}

// LanesUsed returns the number of distinct lanes that carry at least one event.
func (s *Song) LanesUsed() int {
	seen := make(map[int]bool)
	for _, e := range s.Events {
		seen[e.Lane] = true
	}
	return len(seen)
}

func laneOffsets(events []Event) [LaneCount][]int {
	var lanes [LaneCount][]int
	for _, e := range events {
		if e.Lane < 0 || e.Lane > MaxLane {
			continue
		}
		lanes[e.Lane] = append(lanes[e.Lane], e.Offset)
	}
	for i := range lanes {
		sort.Ints(lanes[i])
	}
	return lanes
}
