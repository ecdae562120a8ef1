// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package app

import (
	"fmt"
	"time"

	"github.com/relabs-tech/laptop_rotate/internal/orientation"
)

// RunMockConsole prints classified orientations from the mock source.
// No hardware, no MQTT, no side effects.
func RunMockConsole() error {
	src := orientation.NewMockSource()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		sample, err := src.Next()
		if err != nil {
			return err
		}

		fmt.Printf(
			"%-14s  x=%6.2f y=%6.2f z=%6.2f\n",
			orientation.Classify(sample), sample.X, sample.Y, sample.Z,
		)
	}
	return nil
}
