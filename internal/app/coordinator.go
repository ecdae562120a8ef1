package app

import (
	"fmt"

	"github.com/relabs-tech/laptop_rotate/internal/devices"
	"github.com/relabs-tech/laptop_rotate/internal/orientation"
)

// DisplayController rotates the visible screen output.
type DisplayController interface {
	SetRotation(rotation string) error
}

// DeviceCatalog enumerates the input devices currently attached.
type DeviceCatalog interface {
	ListDevices() ([]string, error)
}

// InputController enables, disables and remaps input devices.
type InputController interface {
	Enable(device string) error
	Disable(device string) error
	SetTransform(device string, m devices.TransformMatrix) error
}

// ErrorKind tags the failure of one coordination step.
type ErrorKind int

const (
	ErrDisplayRotationFailed ErrorKind = iota
	ErrEnumerationFailed
	ErrDeviceNotFound
	ErrDeviceActionFailed
	ErrSensorUnavailable
	ErrSensorUnparseable
)

func (k ErrorKind) String() string {
	switch k {
	case ErrDisplayRotationFailed:
		return "display rotation failed"
	case ErrEnumerationFailed:
		return "device enumeration failed"
	case ErrDeviceNotFound:
		return "device not found"
	case ErrDeviceActionFailed:
		return "device action failed"
	case ErrSensorUnavailable:
		return "sensor unavailable"
	case ErrSensorUnparseable:
		return "sensor unparseable"
	}
	return "unknown error"
}

// TickError is the single failure surfaced for one tick: the kind of the
// first failing step, plus the device class and device name where they
// apply.
type TickError struct {
	Kind   ErrorKind
	Class  devices.Class
	Device string
	Err    error
}

func (e *TickError) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case ErrDeviceNotFound:
		msg = fmt.Sprintf("no %s device found", e.Class)
	case ErrDeviceActionFailed:
		msg = fmt.Sprintf("%s action failed on %q", e.Class, e.Device)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TickError) Unwrap() error {
	return e.Err
}

// Coordinator applies one orientation to the live display and input
// collaborators.
type Coordinator struct {
	Display DisplayController
	Catalog DeviceCatalog
	Inputs  InputController
}

// Apply performs one orientation-change cycle in a fixed order: display
// rotation, keyboard toggle, touchpad toggle, touch transform. It stops
// at the first failure; what was already applied stays applied. The
// display must be rotated before the touch transform is set, the
// transform is only meaningful relative to the new display orientation.
//
// Every step re-queries the device catalog: devices can be hot-plugged
// between steps, let alone between ticks.
func (c *Coordinator) Apply(o orientation.Orientation) error {
	if err := c.Display.SetRotation(o.DisplayRotation()); err != nil {
		return &TickError{Kind: ErrDisplayRotationFailed, Err: err}
	}

	active := devices.ActivationFor(o)

	if err := c.toggleClass(devices.Keyboard, active.Keyboard); err != nil {
		return err
	}
	if err := c.toggleClass(devices.Touchpad, active.Touchpad); err != nil {
		return err
	}
	return c.applyTransforms(o)
}

// toggleClass enables or disables every device of one class. A single
// device failing aborts the remaining devices of the class.
func (c *Coordinator) toggleClass(class devices.Class, enable bool) error {
	matched, err := c.matchClass(class)
	if err != nil {
		return err
	}

	for _, device := range matched {
		action := c.Inputs.Disable
		if enable {
			action = c.Inputs.Enable
		}
		if err := action(device); err != nil {
			return &TickError{Kind: ErrDeviceActionFailed, Class: class, Device: device, Err: err}
		}
	}
	return nil
}

// applyTransforms sets the touch coordinate transform on every
// touch-capable device, aborting the remainder on first failure.
func (c *Coordinator) applyTransforms(o orientation.Orientation) error {
	matched, err := c.matchClass(devices.TouchInput)
	if err != nil {
		return err
	}

	matrix := devices.TransformFor(o)
	for _, device := range matched {
		if err := c.Inputs.SetTransform(device, matrix); err != nil {
			return &TickError{Kind: ErrDeviceActionFailed, Class: devices.TouchInput, Device: device, Err: err}
		}
	}
	return nil
}

// matchClass lists the live catalog and filters it down to one class.
// An empty match is an error: a convertible laptop is expected to have
// at least one device of each class.
func (c *Coordinator) matchClass(class devices.Class) ([]string, error) {
	all, err := c.Catalog.ListDevices()
	if err != nil {
		return nil, &TickError{Kind: ErrEnumerationFailed, Err: err}
	}

	matched := devices.Match(all, class.Patterns())
	if len(matched) == 0 {
		return nil, &TickError{Kind: ErrDeviceNotFound, Class: class}
	}
	return matched, nil
}
