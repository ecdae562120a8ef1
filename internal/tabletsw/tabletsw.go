// Package tabletsw exposes a virtual SW_TABLET_MODE switch through
// uinput so desktop environments listening for the tablet-mode switch
// react to orientation changes as well.
package tabletsw

import (
	"fmt"
	"syscall"
	"time"

	"github.com/holoplot/go-evdev"
)

type Switch struct {
	dev *evdev.InputDevice
}

// New creates the virtual switch device. Requires write access to
// /dev/uinput.
func New() (*Switch, error) {
	dev, err := evdev.CreateDevice(
		"Software Tablet Mode Switch",
		evdev.InputID{
			BusType: 0x03,
			Vendor:  0x4711,
			Product: 0x0816,
			Version: 1,
		},
		map[evdev.EvType][]evdev.EvCode{
			evdev.EV_SW: {
				evdev.SW_TABLET_MODE,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	return &Switch{dev: dev}, nil
}

// Set reports tablet mode on or off to the kernel.
func (s *Switch) Set(tablet bool) error {
	evTime := syscall.NsecToTimeval(time.Now().UnixNano())
	var value int32
	if tablet {
		value = 1
	}

	if err := s.dev.WriteOne(&evdev.InputEvent{
		Time:  evTime,
		Type:  evdev.EV_SW,
		Code:  evdev.SW_TABLET_MODE,
		Value: value,
	}); err != nil {
		return fmt.Errorf("write SW_TABLET_MODE: %w", err)
	}

	if err := s.dev.WriteOne(&evdev.InputEvent{
		Time:  evTime,
		Type:  evdev.EV_SYN,
		Code:  evdev.SYN_REPORT,
		Value: 0,
	}); err != nil {
		return fmt.Errorf("write SYN_REPORT: %w", err)
	}
	return nil
}

func (s *Switch) Close() {
	s.dev.Close()
}
