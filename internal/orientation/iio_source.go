// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package orientation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sysfs attribute names exposed by the IIO accelerometer. The kernel
// performs the ADC; the files each hold a single textual value.
const (
	attrAccelX = "in_accel_x_raw"
	attrAccelY = "in_accel_y_raw"
	attrAccelZ = "in_accel_z_raw"
	attrScale  = "in_accel_scale"
	attrOffset = "in_accel_offset"
)

// Sentinel sensor errors, matched with errors.Is by the poll loop.
var (
	// ErrSensorUnavailable: the sysfs attribute is missing or unreadable.
	ErrSensorUnavailable = errors.New("sensor value unavailable")
	// ErrSensorUnparseable: the attribute content is neither a float nor
	// an integer.
	ErrSensorUnparseable = errors.New("sensor value unparseable")
)

type iioSource struct {
	devicePath string
}

// NewIIOSource returns a Source reading the accelerometer of the IIO
// device at devicePath, e.g. /sys/bus/iio/devices/iio:device0.
func NewIIOSource(devicePath string) Source {
	return &iioSource{devicePath: devicePath}
}

// Next reads the three raw axes plus the scale/offset calibration
// constants and returns a fresh calibrated sample.
func (s *iioSource) Next() (Sample, error) {
	x, err := s.readValue(attrAccelX)
	if err != nil {
		return Sample{}, err
	}
	y, err := s.readValue(attrAccelY)
	if err != nil {
		return Sample{}, err
	}
	z, err := s.readValue(attrAccelZ)
	if err != nil {
		return Sample{}, err
	}
	scale, err := s.readValue(attrScale)
	if err != nil {
		return Sample{}, err
	}
	offset, err := s.readValue(attrOffset)
	if err != nil {
		return Sample{}, err
	}

	return NewSample(x, y, z, scale, offset), nil
}

// readValue reads one sysfs attribute holding a single value on a single
// line. Values are parsed as floating-point first (in_accel_scale is a
// decimal like 0.009806) with an integer fallback for the raw axes.
func (s *iioSource) readValue(attr string) (float64, error) {
	path := filepath.Join(s.devicePath, attr)

	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrSensorUnavailable, path, err)
	}

	raw := strings.TrimSpace(string(b))
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, nil
	}

	// Maybe it's an integer, try again.
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q", ErrSensorUnparseable, path, raw)
	}
	return float64(v), nil
}
