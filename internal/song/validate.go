package song

import (
	"fmt"
	"math"
	"time"
)

// MinSpacingMs is the minimum time between two prompts on the same lane: the time a
// player needs to release and react before the next prompt.
const MinSpacingMs = 190

// MaxOffsetMs is the largest accepted offset. Half the time.Duration range leaves
// room for the run's start time and grace period when the end time is computed.
const MaxOffsetMs = math.MaxInt64 / int64(time.Millisecond) / 2

// SpacingPolicy selects what each same-lane offset is compared against.
type SpacingPolicy string

const (
	// SpacingPredecessor compares each offset with the one before it.
	SpacingPredecessor SpacingPolicy = "predecessor"
	// SpacingFirst compares every offset with the lane's first offset.
	// It reproduces the behavior of the first clonebeat release and only catches
	// crowding right after the opening prompt.
	SpacingFirst SpacingPolicy = "first"
)

// Validation error codes.
const (
	CodeEmpty          = "EMPTY_SONG"
	CodeLaneOutOfRange = "LANE_OUT_OF_RANGE"
	CodeNegativeOffset = "NEGATIVE_OFFSET"
	CodeOffsetTooLarge = "OFFSET_TOO_LARGE"
	CodeTooClose       = "TOO_CLOSE"
)

// ValidationError describes why a song cannot be played.
type ValidationError struct {
	Code    string
	Lane    int
	Offset  int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Rules are the playability constraints checked by the validator.
type Rules struct {
	MinSpacingMs int
	Policy       SpacingPolicy
}

// DefaultRules returns the standard constraints.
func DefaultRules() Rules {
	return Rules{
		MinSpacingMs: MinSpacingMs,
		Policy:       SpacingPredecessor,
	}
}

// Validate checks events against the default rules.
func Validate(events []Event) error {
	return DefaultRules().Validate(events)
}

// Valid reports whether events pass the default rules.
func Valid(events []Event) bool {
	return Validate(events) == nil
}

// Validate checks that every event is on a known lane and that no lane asks for two
// prompts closer than the minimum spacing. It does not modify events.
func (r Rules) Validate(events []Event) error {
	if len(events) == 0 {
		return &ValidationError{
			Code:    CodeEmpty,
			Message: "song has no events",
		}
	}

	for _, e := range events {
		if e.Lane < 0 || e.Lane > MaxLane {
			return &ValidationError{
				Code:    CodeLaneOutOfRange,
				Lane:    e.Lane,
				Offset:  e.Offset,
				Message: fmt.Sprintf("lane %d at %dms is outside 0..%d", e.Lane, e.Offset, MaxLane),
			}
		}
		if e.Offset < 0 {
			return &ValidationError{
				Code:    CodeNegativeOffset,
				Lane:    e.Lane,
				Offset:  e.Offset,
				Message: fmt.Sprintf("lane %d has negative offset %dms", e.Lane, e.Offset),
			}
		}
		if int64(e.Offset) > MaxOffsetMs {
			return &ValidationError{
				Code:    CodeOffsetTooLarge,
				Lane:    e.Lane,
				Offset:  e.Offset,
				Message: fmt.Sprintf("lane %d has offset %dms, maximum is %dms", e.Lane, e.Offset, MaxOffsetMs),
			}
		}
	}

	lanes := laneOffsets(events)
	for lane, offsets := range lanes {
		if err := r.checkSpacing(lane, offsets); err != nil {
			return err
		}
	}
	return nil
}

// checkSpacing verifies a single lane's sorted offsets.
func (r Rules) checkSpacing(lane int, offsets []int) error {
	if len(offsets) < 2 {
		return nil
	}

	previous := offsets[0]
	for _, offset := range offsets[1:] {
		if gap := offset - previous; gap < r.MinSpacingMs {
			return &ValidationError{
				Code:   CodeTooClose,
				Lane:   lane,
				Offset: offset,
				Message: fmt.Sprintf("lane %d: prompt at %dms is %dms after %dms, minimum is %dms",
					lane, offset, gap, previous, r.MinSpacingMs),
			}
		}
		if r.Policy != SpacingFirst {
			previous = offset
		}
	}
	return nil
}
