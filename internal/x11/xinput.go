// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package x11

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/relabs-tech/laptop_rotate/internal/devices"
)

// XInput enumerates and drives input devices by shelling out to xinput.
type XInput struct{}

// ListDevices returns the names of all currently attached input devices,
// one per xinput output line. The list is live: external peripherals
// appear and disappear between calls.
func (XInput) ListDevices() ([]string, error) {
	out, err := exec.Command("xinput", "list", "--name-only").Output()
	if err != nil {
		return nil, fmt.Errorf("xinput list: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// Enable re-enables an input device.
func (XInput) Enable(device string) error {
	return toggle("enable", device)
}

// Disable disables an input device.
func (XInput) Disable(device string) error {
	return toggle("disable", device)
}

func toggle(action, device string) error {
	cmd := exec.Command("xinput", action, device)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("xinput %s %q: %w (%s)", action, device, err, out)
	}
	return nil
}

// SetTransform sets the Coordinate Transformation Matrix property of a
// touch-capable device.
func (XInput) SetTransform(device string, m devices.TransformMatrix) error {
	args := []string{"set-prop", device, "Coordinate Transformation Matrix"}
	for _, n := range m {
		args = append(args, strconv.Itoa(n))
	}

	cmd := exec.Command("xinput", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("xinput set-prop %q: %w (%s)", device, err, out)
	}
	return nil
}
