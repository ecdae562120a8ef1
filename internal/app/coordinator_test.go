package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/laptop_rotate/internal/devices"
	"github.com/relabs-tech/laptop_rotate/internal/orientation"
)

// fakeDisplay records rotations and optionally fails.
type fakeDisplay struct {
	rotations []string
	err       error
}

func (d *fakeDisplay) SetRotation(rotation string) error {
	if d.err != nil {
		return d.err
	}
	d.rotations = append(d.rotations, rotation)
	return nil
}

// fakeCatalog serves a fixed device list and counts queries.
type fakeCatalog struct {
	devices []string
	err     error
	calls   int
}

func (c *fakeCatalog) ListDevices() ([]string, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.devices, nil
}

// fakeInputs records enable/disable/transform calls in order and can be
// told to fail on one device name.
type fakeInputs struct {
	enabled    []string
	disabled   []string
	transforms map[string]devices.TransformMatrix
	failDevice string
}

func (i *fakeInputs) Enable(device string) error {
	if device == i.failDevice {
		return errors.New("boom")
	}
	i.enabled = append(i.enabled, device)
	return nil
}

func (i *fakeInputs) Disable(device string) error {
	if device == i.failDevice {
		return errors.New("boom")
	}
	i.disabled = append(i.disabled, device)
	return nil
}

func (i *fakeInputs) SetTransform(device string, m devices.TransformMatrix) error {
	if device == i.failDevice {
		return errors.New("boom")
	}
	if i.transforms == nil {
		i.transforms = make(map[string]devices.TransformMatrix)
	}
	i.transforms[device] = m
	return nil
}

var laptopDevices = []string{
	"Video Bus",
	"AT Translated Set 2 keyboard",
	"SynPS/2 Synaptics TouchPad",
	"Wacom HID 488F Touchscreen",
}

func newCoordinator(catalog *fakeCatalog) (*Coordinator, *fakeDisplay, *fakeInputs) {
	display := &fakeDisplay{}
	inputs := &fakeInputs{}
	return &Coordinator{Display: display, Catalog: catalog, Inputs: inputs}, display, inputs
}

func TestCoordinatorApply(t *testing.T) {
	t.Parallel()

	t.Run("portrait-left disables inputs and rotates right", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{devices: laptopDevices}
		coord, display, inputs := newCoordinator(catalog)

		sample := orientation.NewSample(-8, 0, 0, 1, 0)
		require.NoError(t, coord.Apply(orientation.Classify(sample)))

		assert.Equal(t, []string{"right"}, display.rotations)
		assert.Equal(t, []string{"AT Translated Set 2 keyboard", "SynPS/2 Synaptics TouchPad"}, inputs.disabled)
		assert.Empty(t, inputs.enabled)
		assert.Equal(t,
			devices.TransformMatrix{0, 1, 0, -1, 0, 1, 0, 0, 1},
			inputs.transforms["Wacom HID 488F Touchscreen"])
	})

	t.Run("normal enables inputs and resets the transform", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{devices: laptopDevices}
		coord, display, inputs := newCoordinator(catalog)

		sample := orientation.NewSample(0, -9.8, 0, 1, 0)
		require.NoError(t, coord.Apply(orientation.Classify(sample)))

		assert.Equal(t, []string{"normal"}, display.rotations)
		assert.Equal(t, []string{"AT Translated Set 2 keyboard", "SynPS/2 Synaptics TouchPad"}, inputs.enabled)
		assert.Empty(t, inputs.disabled)
		assert.Equal(t,
			devices.TransformMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1},
			inputs.transforms["Wacom HID 488F Touchscreen"])
	})

	t.Run("catalog is re-queried for every step", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{devices: laptopDevices}
		coord, _, _ := newCoordinator(catalog)

		require.NoError(t, coord.Apply(orientation.Tablet))
		assert.Equal(t, 3, catalog.calls)
	})

	t.Run("display failure aborts the whole tick", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{devices: laptopDevices}
		coord, display, inputs := newCoordinator(catalog)
		display.err = errors.New("no display")

		err := coord.Apply(orientation.Tent)
		var tickErr *TickError
		require.ErrorAs(t, err, &tickErr)
		assert.Equal(t, ErrDisplayRotationFailed, tickErr.Kind)
		assert.Zero(t, catalog.calls)
		assert.Empty(t, inputs.disabled)
	})

	t.Run("missing keyboard surfaces DeviceNotFound", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{devices: []string{"SynPS/2 Synaptics TouchPad"}}
		coord, _, inputs := newCoordinator(catalog)

		err := coord.Apply(orientation.Tablet)
		var tickErr *TickError
		require.ErrorAs(t, err, &tickErr)
		assert.Equal(t, ErrDeviceNotFound, tickErr.Kind)
		assert.Equal(t, devices.Keyboard, tickErr.Class)
		// Fail-fast: touchpad untouched even though it exists.
		assert.Empty(t, inputs.disabled)
	})

	t.Run("missing touchpad stops before the touch-input step", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{devices: []string{
			"AT Translated Set 2 keyboard",
			"Wacom HID 488F Touchscreen",
		}}
		coord, _, inputs := newCoordinator(catalog)

		err := coord.Apply(orientation.Tablet)
		var tickErr *TickError
		require.ErrorAs(t, err, &tickErr)
		assert.Equal(t, ErrDeviceNotFound, tickErr.Kind)
		assert.Equal(t, devices.Touchpad, tickErr.Class)
		assert.Empty(t, inputs.transforms)
	})

	t.Run("one device failing aborts the rest of its class", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{devices: []string{
			"AT Translated Set 2 keyboard",
			"SynPS/2 Synaptics TouchPad",
			"TPPS/2 IBM TrackPoint",
			"Wacom HID 488F Touchscreen",
		}}
		coord, _, inputs := newCoordinator(catalog)
		inputs.failDevice = "SynPS/2 Synaptics TouchPad"

		err := coord.Apply(orientation.Tablet)
		var tickErr *TickError
		require.ErrorAs(t, err, &tickErr)
		assert.Equal(t, ErrDeviceActionFailed, tickErr.Kind)
		assert.Equal(t, devices.Touchpad, tickErr.Class)
		assert.Equal(t, "SynPS/2 Synaptics TouchPad", tickErr.Device)
		assert.NotContains(t, inputs.disabled, "TPPS/2 IBM TrackPoint")
		assert.Empty(t, inputs.transforms)
	})

	t.Run("enumeration failure surfaces as such", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{err: errors.New("xinput missing")}
		coord, _, _ := newCoordinator(catalog)

		err := coord.Apply(orientation.Normal)
		var tickErr *TickError
		require.ErrorAs(t, err, &tickErr)
		assert.Equal(t, ErrEnumerationFailed, tickErr.Kind)
	})
}

func TestTickErrorMessages(t *testing.T) {
	t.Parallel()

	err := &TickError{Kind: ErrDeviceNotFound, Class: devices.Touchpad}
	assert.Equal(t, "no touchpad device found", err.Error())

	wrapped := errors.New("exit status 1")
	err = &TickError{Kind: ErrDeviceActionFailed, Class: devices.Keyboard, Device: "kbd", Err: wrapped}
	assert.Contains(t, err.Error(), `keyboard action failed on "kbd"`)
	assert.ErrorIs(t, err, wrapped)
}
