// Package devices holds the pure device-coordination policies: which
// enumerated input devices belong to which logical class, whether a class
// is active in a given orientation, and the coordinate transform touch
// devices need so their input stays aligned with the rotated display.
package devices

import (
	"strings"

	"github.com/relabs-tech/laptop_rotate/internal/orientation"
)

// Class is a logical grouping of input devices, identified by free-text
// name patterns. Matching by substring is fragile (localization, driver
// renaming), so new hardware should only ever mean a new entry in the
// pattern table, never new logic.
type Class int

const (
	Keyboard Class = iota
	Touchpad
	TouchInput
)

func (c Class) String() string {
	switch c {
	case Keyboard:
		return "keyboard"
	case Touchpad:
		return "touchpad"
	case TouchInput:
		return "touch-input"
	}
	return "unknown"
}

// classPatterns is the device identification table. The keyboard pattern
// is the full evdev name because a laptop has exactly one internal
// keyboard; the others match any touchpad/trackpoint and any
// touchscreen/wacom digitizer.
var classPatterns = map[Class][]string{
	Keyboard:   {"AT Translated Set 2 keyboard"},
	Touchpad:   {"touchpad", "trackpoint"},
	TouchInput: {"touchscreen", "wacom"},
}

// Patterns returns the name patterns identifying the class.
func (c Class) Patterns() []string {
	return classPatterns[c]
}

// Match filters all to the device names containing any of the patterns,
// case-insensitively. The device name is the haystack. Order of all is
// preserved; the result may be empty.
func Match(all []string, patterns []string) []string {
	var matched []string
	for _, device := range all {
		name := strings.ToLower(device)
		for _, pattern := range patterns {
			if strings.Contains(name, strings.ToLower(pattern)) {
				matched = append(matched, device)
				break
			}
		}
	}
	return matched
}

// Activation says whether the keyboard and touchpad classes should be
// enabled in an orientation.
type Activation struct {
	Keyboard bool
	Touchpad bool
}

// ActivationFor enables keyboard and touchpad only in normal mode. In
// every other orientation they are folded away behind the screen and
// must not intercept input accidentally.
func ActivationFor(o orientation.Orientation) Activation {
	enabled := o == orientation.Normal
	return Activation{Keyboard: enabled, Touchpad: enabled}
}

// TransformMatrix is a row-major 3×3 coordinate transformation applied
// to touch-capable devices so touch points land where the rotated
// framebuffer shows them.
type TransformMatrix [9]int

var (
	identity            = TransformMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
	matrixPortraitLeft  = TransformMatrix{0, 1, 0, -1, 0, 1, 0, 0, 1}
	matrixPortraitRight = TransformMatrix{0, -1, 1, 1, 0, 0, 0, 0, 1}
	matrixInverted      = TransformMatrix{-1, 0, 1, 0, -1, 1, 0, 0, 1}
)

// TransformFor returns the touch transform for an orientation. The rows
// must match the display rotation applied for the same orientation
// exactly; any deviation breaks touch alignment. Tablet keeps the
// identity because the display is not rotated in tablet mode either.
func TransformFor(o orientation.Orientation) TransformMatrix {
	switch o {
	case orientation.PortraitLeft:
		return matrixPortraitLeft
	case orientation.PortraitRight:
		return matrixPortraitRight
	case orientation.Tent:
		return matrixInverted
	default:
		return identity
	}
}
