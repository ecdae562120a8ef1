// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/laptop_rotate/internal/app"
	"github.com/relabs-tech/laptop_rotate/internal/config"
)

func main() {
	configPath := flag.String("config", "./laptop_rotate.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting laptop-rotate web server (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunWeb(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
