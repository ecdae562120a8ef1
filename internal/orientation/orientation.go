package orientation

import (
	"encoding/json"
	"fmt"
)

// Orientation is one of the five physical postures of a convertible laptop.
type Orientation int

const (
	// Normal mode, the laptop is opened, keyboard horizontal and screen vertical.
	Normal Orientation = iota
	// PortraitLeft: from normal mode, the laptop is rotated to the left.
	PortraitLeft
	// PortraitRight: from normal mode, the laptop is rotated to the right.
	PortraitRight
	// Tent: screen upside down facing the user, keyboard vertical behind the
	// screen with just enough angle so that the laptop can stand.
	Tent
	// Tablet: screen horizontal with the keyboard folded behind, like a
	// drawing tablet.
	Tablet
)

func (o Orientation) String() string {
	switch o {
	case Normal:
		return "normal"
	case PortraitLeft:
		return "portrait-left"
	case PortraitRight:
		return "portrait-right"
	case Tent:
		return "tent"
	case Tablet:
		return "tablet"
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// MarshalJSON encodes the orientation as its string name so MQTT
// subscribers don't depend on the numeric values.
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Orientation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "normal":
		*o = Normal
	case "portrait-left":
		*o = PortraitLeft
	case "portrait-right":
		*o = PortraitRight
	case "tent":
		*o = Tent
	case "tablet":
		*o = Tablet
	default:
		return fmt.Errorf("unknown orientation %q", s)
	}
	return nil
}

// DisplayRotation returns the display rotation matching the orientation,
// one of "normal", "left", "right", "inverted" (xrandr's vocabulary).
// Tablet keeps the normal rotation: the screen is flat and the last
// thing on it was landscape.
func (o Orientation) DisplayRotation() string {
	switch o {
	case PortraitLeft:
		return "right"
	case PortraitRight:
		return "left"
	case Tent:
		return "inverted"
	default:
		return "normal"
	}
}

// Sample is a calibrated 3-axis accelerometer reading. Values usually
// range from approx. -10 to approx. 10 but nothing is enforced, raw
// accelerometer noise is expected.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewSample builds a calibrated sample from raw ADC values and the
// scale/offset constants exposed by the sensor.
func NewSample(x, y, z, scale, offset float64) Sample {
	return Sample{
		X: normalize(x, scale, offset),
		Y: normalize(y, scale, offset),
		Z: normalize(z, scale, offset),
	}
}

func normalize(value, scale, offset float64) float64 {
	return (value + offset) * scale
}

// Classify maps a calibrated sample to an orientation. It is a total
// function: any reading, however noisy, classifies to something.
//
// The accelerometer sits in the screen half. With the laptop in normal
// mode the reading is roughly (x=0, y=-10, z=0); rotated left x goes to
// -10, rotated right to +10; screen flat facing the sky z goes to -10;
// screen upside down y goes to +10.
//
// The bands are deliberately wide, covering roughly half the travel
// toward the next orientation, so an in-progress rotation classifies as
// its destination before the user finishes moving the laptop. The match
// order is a tie-break policy: x wins over z, z wins over y.
func Classify(s Sample) Orientation {
	switch {
	case s.X >= -11 && s.X <= -5:
		return PortraitLeft
	case s.X >= 5 && s.X <= 11:
		return PortraitRight
	case s.Z >= -11 && s.Z <= -7:
		// Screen close to horizontal facing the sky: assume the user put
		// the keyboard behind the screen in tablet mode.
		return Tablet
	case s.Y >= 7 && s.Y <= 11:
		return Tent
	default:
		// safe fallback
		return Normal
	}
}

// State is the orientation snapshot published over MQTT after every tick.
type State struct {
	Orientation Orientation `json:"orientation"`
	Sample      Sample      `json:"sample"`
	Time        string      `json:"time"`
}

// Source is anything that can provide calibrated samples over time:
// the IIO sysfs source on real hardware, a mock source in development.
type Source interface {
	Next() (Sample, error)
}
