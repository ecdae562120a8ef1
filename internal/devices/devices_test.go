package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/laptop_rotate/internal/orientation"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	t.Run("case-insensitive substring on the device name", func(t *testing.T) {
		t.Parallel()
		got := Match([]string{"My TouchPad Device"}, []string{"touchpad"})
		assert.Equal(t, []string{"My TouchPad Device"}, got)

		got = Match([]string{"Foo"}, []string{"touchpad"})
		assert.Empty(t, got)
	})

	t.Run("any pattern matches", func(t *testing.T) {
		t.Parallel()
		all := []string{
			"AT Translated Set 2 keyboard",
			"SynPS/2 Synaptics TouchPad",
			"TPPS/2 IBM TrackPoint",
			"Wacom HID 488F Finger",
		}
		got := Match(all, Touchpad.Patterns())
		assert.Equal(t, []string{"SynPS/2 Synaptics TouchPad", "TPPS/2 IBM TrackPoint"}, got)
	})

	t.Run("order of the catalog is preserved", func(t *testing.T) {
		t.Parallel()
		all := []string{"b touchscreen", "a wacom pen", "c touchscreen"}
		got := Match(all, TouchInput.Patterns())
		assert.Equal(t, all, got)
	})

	t.Run("pattern is the needle, not the haystack", func(t *testing.T) {
		t.Parallel()
		// A device name that is a substring of the pattern must not match.
		got := Match([]string{"touch"}, []string{"touchpad"})
		assert.Empty(t, got)
	})
}

func TestActivationFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Activation{Keyboard: true, Touchpad: true}, ActivationFor(orientation.Normal))

	for _, o := range []orientation.Orientation{
		orientation.PortraitLeft,
		orientation.PortraitRight,
		orientation.Tent,
		orientation.Tablet,
	} {
		assert.Equal(t, Activation{}, ActivationFor(o), "orientation %s", o)
	}
}

func TestTransformFor(t *testing.T) {
	t.Parallel()

	t.Run("canonical matrices", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, TransformMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}, TransformFor(orientation.Normal))
		assert.Equal(t, TransformMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}, TransformFor(orientation.Tablet))
		assert.Equal(t, TransformMatrix{0, 1, 0, -1, 0, 1, 0, 0, 1}, TransformFor(orientation.PortraitLeft))
		assert.Equal(t, TransformMatrix{0, -1, 1, 1, 0, 0, 0, 0, 1}, TransformFor(orientation.PortraitRight))
		assert.Equal(t, TransformMatrix{-1, 0, 1, 0, -1, 1, 0, 0, 1}, TransformFor(orientation.Tent))
	})

	t.Run("round-trip with the inverse orientation is identity", func(t *testing.T) {
		t.Parallel()
		// PortraitLeft and PortraitRight are opposite 90° rotations;
		// Tent is its own inverse, as is Normal.
		pairs := [][2]orientation.Orientation{
			{orientation.Normal, orientation.Normal},
			{orientation.PortraitLeft, orientation.PortraitRight},
			{orientation.PortraitRight, orientation.PortraitLeft},
			{orientation.Tent, orientation.Tent},
		}

		id := TransformFor(orientation.Normal)
		for _, pair := range pairs {
			product := multiply(TransformFor(pair[0]), TransformFor(pair[1]))
			require.Equal(t, id, product, "%s ∘ %s", pair[0], pair[1])
		}
	})
}

// multiply performs row-major 3×3 matrix multiplication.
func multiply(a, b TransformMatrix) TransformMatrix {
	var out TransformMatrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sum := 0
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			out[row*3+col] = sum
		}
	}
	return out
}
