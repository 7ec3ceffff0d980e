package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clonebeat/internal/config"
	"github.com/vovakirdan/clonebeat/internal/core"
)

// KeyMapper translates Bubble Tea key messages to lane presses and platform actions.
// Lane keys take precedence during play, so only keys no lane can use are bound to
// actions there.
type KeyMapper struct {
	lanes config.KeyMap
}

// NewKeyMapper creates a key mapper for the given lane bindings.
func NewKeyMapper(lanes config.KeyMap) *KeyMapper {
	return &KeyMapper{lanes: lanes}
}

// LaneKey returns the key identity of msg if it is bound to a lane.
func (km *KeyMapper) LaneKey(msg tea.KeyMsg) (string, bool) {
	key := msg.String()
	if _, ok := km.lanes.Lane(key); ok {
		return key, true
	}
	return "", false
}

// MapPlayKey translates a key pressed during a run to an action.
func (km *KeyMapper) MapPlayKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionQuit
	case "esc":
		return core.ActionBack
	case "ctrl+r":
		return core.ActionRestart
	}
	return core.ActionNone
}
