// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/laptop_rotate/internal/config"
	"github.com/relabs-tech/laptop_rotate/internal/lid"
	"github.com/relabs-tech/laptop_rotate/internal/orientation"
	"github.com/relabs-tech/laptop_rotate/internal/tabletsw"
	"github.com/relabs-tech/laptop_rotate/internal/x11"
)

// RunRotationDaemon polls the accelerometer forever, classifying the
// laptop orientation each tick and applying display rotation and input
// device changes when it moves. The applied state is published to MQTT
// so the console and web observers can follow along.
func RunRotationDaemon() error {
	log.Println("starting laptop-rotate daemon")

	cfg := config.Get()
	src := orientation.NewIIOSource(cfg.SensorDevicePath)

	// Probe the sensor once before anything else. A laptop with no
	// accelerometer at all is fatal at startup; transient read errors
	// later are not.
	if _, err := src.Next(); err != nil {
		return fmt.Errorf("initial sensor read: %w", err)
	}

	var lidChecker *lid.Checker
	if cfg.LidCheck {
		var err error
		lidChecker, err = lid.NewChecker()
		if err != nil {
			log.Printf("rotated: lid check unavailable, continuing without: %v", err)
		} else {
			defer lidChecker.Close()
		}
	}

	var tabletSwitch *tabletsw.Switch
	if cfg.TabletModeSwitch {
		var err error
		tabletSwitch, err = tabletsw.New()
		if err != nil {
			log.Printf("rotated: tablet-mode switch unavailable, continuing without: %v", err)
		} else {
			defer tabletSwitch.Close()
		}
	}

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDaemon)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect: %w", token.Error())
	}
	defer client.Disconnect(250)
	log.Printf("rotated: connected to MQTT broker at %s", cfg.MQTTBroker)

	coord := &Coordinator{
		Display: x11.XRandR{},
		Catalog: x11.XInput{},
		Inputs:  x11.XInput{},
	}

	// Last applied orientation, kept only to skip redundant xrandr and
	// xinput calls while the laptop sits still.
	var lastApplied orientation.Orientation
	haveApplied := false

	ticker := time.NewTicker(time.Duration(cfg.PollInterval) * time.Millisecond)
	defer ticker.Stop()
	log.Printf("rotated: polling %s every %d ms", cfg.SensorDevicePath, cfg.PollInterval)

	for t := range ticker.C {
		if lidChecker != nil && lidChecker.Closed() {
			// Lid shut; the reading says nothing about how the laptop
			// is held.
			continue
		}

		sample, err := src.Next()
		if err != nil {
			kind := ErrSensorUnavailable
			if errors.Is(err, orientation.ErrSensorUnparseable) {
				kind = ErrSensorUnparseable
			}
			log.Printf("rotated: %s: %v", kind, err)
			continue
		}

		current := orientation.Classify(sample)

		if !haveApplied || current != lastApplied {
			if err := coord.Apply(current); err != nil {
				log.Printf("rotated: apply %s: %v", current, err)
				continue
			}
			log.Printf("rotated: orientation %s applied (sample x=%.2f y=%.2f z=%.2f)",
				current, sample.X, sample.Y, sample.Z)

			if tabletSwitch != nil {
				entering := current == orientation.Tablet
				leaving := haveApplied && lastApplied == orientation.Tablet
				if entering || leaving {
					if err := tabletSwitch.Set(entering); err != nil {
						log.Printf("rotated: tablet-mode switch: %v", err)
					}
				}
			}

			lastApplied = current
			haveApplied = true
		}

		state := orientation.State{
			Orientation: current,
			Sample:      sample,
			Time:        t.Format(time.RFC3339),
		}
		payload, err := json.Marshal(state)
		if err != nil {
			log.Printf("rotated: json marshal error: %v", err)
			continue
		}
		if token := client.Publish(cfg.TopicOrientation, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("rotated: MQTT publish error: %v", token.Error())
		}
	}
	return nil
}
