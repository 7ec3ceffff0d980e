package core

import "time"

// Action represents a semantic platform action, abstracted from physical key presses.
// Lane presses are not actions; they travel as InputEvents.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up, k - move selection up
	ActionDown           // Down, j - move selection down
	ActionConfirm        // Enter - start the selected song
	ActionBack           // Esc - back to the song list
	ActionRestart        // Ctrl+R - replay the song after the run ends
	ActionQuit           // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputEvent is a single raw key press.
// At is the press time on the run's clock when the platform can supply it (Stamped);
// otherwise the engine judges the press at the frame's sampled time.
type InputEvent struct {
	Key     string
	At      time.Duration
	Stamped bool
}

// InputFrame buffers the key presses received between two frames.
// It is drained completely once per frame; nothing is carried over.
type InputFrame struct {
	events []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() *InputFrame {
	return &InputFrame{}
}

// Push records a key press without a timestamp.
func (f *InputFrame) Push(key string) {
	f.events = append(f.events, InputEvent{Key: key})
}

// PushAt records a key press observed at the given clock time.
func (f *InputFrame) PushAt(key string, at time.Duration) {
	f.events = append(f.events, InputEvent{Key: key, At: at, Stamped: true})
}

// Len returns the number of buffered presses.
func (f *InputFrame) Len() int {
	return len(f.events)
}

// Drain returns all buffered presses in arrival order and empties the frame.
func (f *InputFrame) Drain() []InputEvent {
	if len(f.events) == 0 {
		return nil
	}
	out := f.events
	f.events = nil
	return out
}

// Clear drops all buffered presses.
func (f *InputFrame) Clear() {
	f.events = nil
}
