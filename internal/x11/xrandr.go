// Package x11 implements the display and input collaborators on top of
// the xrandr and xinput command line tools.
package x11

import (
	"fmt"
	"os/exec"
)

// XRandR rotates the screen output by shelling out to xrandr.
type XRandR struct{}

// SetRotation rotates the current output. rotation is one of "normal",
// "left", "right", "inverted".
func (XRandR) SetRotation(rotation string) error {
	cmd := exec.Command("xrandr", "--orientation", rotation)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("xrandr --orientation %s: %w (%s)", rotation, err, out)
	}
	return nil
}
