package song

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		code   string // empty when the song is valid
	}{
		{
			name:   "single event",
			events: []Event{{Lane: 0, Offset: 1000}},
		},
		{
			name:   "gap below minimum on one lane",
			events: []Event{{Lane: 3, Offset: 2000}, {Lane: 3, Offset: 2100}},
			code:   CodeTooClose,
		},
		{
			name:   "lane out of range",
			events: []Event{{Lane: 16, Offset: 500}},
			code:   CodeLaneOutOfRange,
		},
		{
			name:   "negative lane",
			events: []Event{{Lane: -1, Offset: 500}},
			code:   CodeLaneOutOfRange,
		},
		{
			name:   "negative offset",
			events: []Event{{Lane: 2, Offset: -10}},
			code:   CodeNegativeOffset,
		},
		{
			name:   "offset past the clock range",
			events: []Event{{Lane: 0, Offset: 1 << 62}},
			code:   CodeOffsetTooLarge,
		},
		{
			name:   "largest accepted offset",
			events: []Event{{Lane: 0, Offset: int(MaxOffsetMs)}},
		},
		{
			name: "empty song",
			code: CodeEmpty,
		},
		{
			name:   "exactly minimum spacing",
			events: []Event{{Lane: 7, Offset: 1000}, {Lane: 7, Offset: 1190}},
		},
		{
			name:   "close events on different lanes",
			events: []Event{{Lane: 1, Offset: 1000}, {Lane: 2, Offset: 1000}, {Lane: 15, Offset: 1010}},
		},
		{
			name:   "unsorted input is sorted per lane",
			events: []Event{{Lane: 4, Offset: 3000}, {Lane: 4, Offset: 1000}, {Lane: 4, Offset: 2000}},
		},
		{
			name:   "crowding late in a lane",
			events: []Event{{Lane: 4, Offset: 1000}, {Lane: 4, Offset: 2000}, {Lane: 4, Offset: 2100}},
			code:   CodeTooClose,
		},
		{
			name:   "duplicate offset",
			events: []Event{{Lane: 9, Offset: 400}, {Lane: 9, Offset: 400}},
			code:   CodeTooClose,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.events)
			if tc.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected valid", err)
				}
				if !Valid(tc.events) {
					t.Error("Valid() = false, expected true")
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, expected *ValidationError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("Code = %s, expected %s", verr.Code, tc.code)
			}
			if Valid(tc.events) {
				t.Error("Valid() = true, expected false")
			}
		})
	}
}

func TestValidateSpacingPolicies(t *testing.T) {
	// 1000 -> 1200 -> 1300: the second gap is 100ms but 300ms from the first prompt.
	events := []Event{{Lane: 2, Offset: 1000}, {Lane: 2, Offset: 1200}, {Lane: 2, Offset: 1300}}

	if err := (Rules{MinSpacingMs: 190, Policy: SpacingPredecessor}).Validate(events); err == nil {
		t.Error("predecessor policy should reject a 100ms gap")
	}
	if err := (Rules{MinSpacingMs: 190, Policy: SpacingFirst}).Validate(events); err != nil {
		t.Errorf("first policy should only compare against 1000ms, got %v", err)
	}

	crowdedStart := []Event{{Lane: 2, Offset: 1000}, {Lane: 2, Offset: 1100}}
	if err := (Rules{MinSpacingMs: 190, Policy: SpacingFirst}).Validate(crowdedStart); err == nil {
		t.Error("first policy should still reject crowding after the first prompt")
	}
}

// Every lane spaced at or beyond the minimum is always accepted.
func TestValidateWellSpacedGrid(t *testing.T) {
	var events []Event
	for lane := 0; lane <= MaxLane; lane++ {
		for i := 0; i < 20; i++ {
			events = append(events, Event{Lane: lane, Offset: lane*7 + i*(MinSpacingMs+lane)})
		}
	}
	if err := Validate(events); err != nil {
		t.Errorf("Validate() = %v, expected valid", err)
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	events := []Event{{Lane: 1, Offset: 900}, {Lane: 1, Offset: 300}}
	_ = Validate(events)

	if events[0].Offset != 900 || events[1].Offset != 300 {
		t.Errorf("Validate() reordered the script: %v", events)
	}
}

func TestSongOffsetsAndLength(t *testing.T) {
	s := &Song{Events: []Event{
		{Lane: 3, Offset: 2500},
		{Lane: 0, Offset: 1000},
		{Lane: 3, Offset: 500},
	}}

	lanes := s.Offsets()
	if len(lanes[3]) != 2 || lanes[3][0] != 500 || lanes[3][1] != 2500 {
		t.Errorf("lane 3 offsets = %v, expected [500 2500]", lanes[3])
	}
	if len(lanes[1]) != 0 {
		t.Errorf("lane 1 offsets = %v, expected none", lanes[1])
	}
	if s.Length().Milliseconds() != 2500 {
		t.Errorf("Length() = %v, expected 2.5s", s.Length())
	}
	if s.LanesUsed() != 2 {
		t.Errorf("LanesUsed() = %d, expected 2", s.LanesUsed())
	}
}
