package main

import (
	"encoding/json"
	"flag"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/laptop_rotate/internal/config"
	"github.com/relabs-tech/laptop_rotate/internal/orientation"
)

// Publishes mock orientation states so the console and web observers can
// be developed without the daemon or an accelerometer.
func main() {
	configPath := flag.String("config", "./laptop_rotate.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting laptop-rotate MQTT producer (mock)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDMock)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
	}
	defer client.Disconnect(250)

	src := orientation.NewMockSource()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for t := range ticker.C {
		sample, err := src.Next()
		if err != nil {
			log.Printf("error from mock source: %v", err)
			continue
		}

		state := orientation.State{
			Orientation: orientation.Classify(sample),
			Sample:      sample,
			Time:        t.Format(time.RFC3339),
		}

		payload, err := json.Marshal(state)
		if err != nil {
			log.Printf("json marshal error: %v", err)
			continue
		}

		token := client.Publish(cfg.TopicOrientation, 0, true, payload)
		token.Wait()

		log.Printf("%s published state: %+v", t.Format(time.RFC3339), state)
	}
}
