// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package orientation

import (
	"time"
)

type mockSource struct {
	start time.Time
}

// NewMockSource creates a mock sample source that walks through the
// five orientations, holding each for a few seconds. Useful for
// development without an accelerometer.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

// Representative readings for each orientation, in classification order.
var mockSamples = []Sample{
	{X: 0, Y: -9.8, Z: 0},  // normal
	{X: -9.8, Y: 0, Z: 0},  // portrait-left
	{X: 9.8, Y: 0, Z: 0},   // portrait-right
	{X: 0, Y: 9.8, Z: 0},   // tent
	{X: 0, Y: 0, Z: -9.8},  // tablet
}

func (m *mockSource) Next() (Sample, error) {
	elapsed := int(time.Since(m.start).Seconds()) / 5
	return mockSamples[elapsed%len(mockSamples)], nil
}
