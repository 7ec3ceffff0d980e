package skin

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Validation error codes.
const (
	CodeBadSize    = "BAD_SIZE"
	CodeFrameCount = "FRAME_COUNT"
	CodeFrameSize  = "FRAME_SIZE"
	CodeBadColors  = "BAD_COLORS"
)

// ValidationError contains details about an unusable sheet.
type ValidationError struct {
	Skin    string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("skin %s: [%s] %s", e.Skin, e.Code, e.Message)
}

// Validate checks that a sheet has an idle frame plus at least one animation frame,
// that every frame fits its declared size and that the declared size fits a lane
// cell of cellW x cellH.
func Validate(s *Sheet, cellW, cellH int) error {
	if s.Width <= 0 || s.Height <= 0 {
		return ValidationError{
			Skin:    s.ID,
			Code:    CodeBadSize,
			Message: fmt.Sprintf("frame size %dx%d must be positive", s.Width, s.Height),
		}
	}
	if s.Width > cellW || s.Height > cellH {
		return ValidationError{
			Skin:    s.ID,
			Code:    CodeBadSize,
			Message: fmt.Sprintf("frame size %dx%d does not fit lane cell %dx%d", s.Width, s.Height, cellW, cellH),
		}
	}

	if len(s.Frames) < 2 {
		return ValidationError{
			Skin:    s.ID,
			Code:    CodeFrameCount,
			Message: fmt.Sprintf("sheet has %d frames, need at least 2", len(s.Frames)),
		}
	}

	for i, frame := range s.Frames {
		if len(frame) > s.Height {
			return ValidationError{
				Skin:    s.ID,
				Code:    CodeFrameSize,
				Message: fmt.Sprintf("frame %d has %d lines, height is %d", i, len(frame), s.Height),
			}
		}
		for y, line := range frame {
			if w := lipgloss.Width(line); w > s.Width {
				return ValidationError{
					Skin:    s.ID,
					Code:    CodeFrameSize,
					Message: fmt.Sprintf("frame %d line %d is %d cells wide, width is %d", i, y, w, s.Width),
				}
			}
		}
	}

	for i, stop := range s.Colors {
		if stop.From < 0 || (i > 0 && stop.From <= s.Colors[i-1].From) {
			return ValidationError{
				Skin:    s.ID,
				Code:    CodeBadColors,
				Message: fmt.Sprintf("color stop %d starts at frame %d, stops must ascend from 0", i, stop.From),
			}
		}
	}

	return nil
}
