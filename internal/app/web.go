package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/laptop_rotate/internal/config"
	"github.com/relabs-tech/laptop_rotate/internal/orientation"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// RunWeb serves the orientation status page: a JSON endpoint with the
// latest state and a websocket that streams every update, both fed from
// the MQTT topic the daemon publishes to.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu        sync.RWMutex
		lastState orientation.State
		haveState bool
		clients   = make(map[*websocket.Conn]struct{})
	)

	broadcast := func(payload []byte) {
		mu.Lock()
		defer mu.Unlock()
		for conn := range clients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients, conn)
			}
		}
	}

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe to the orientation topic and fan updates out
	token := client.Subscribe(cfg.TopicOrientation, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s orientation.State
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("web: MQTT payload unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastState = s
		haveState = true
		mu.Unlock()

		broadcast(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicOrientation)

	// 3) JSON API endpoint: latest orientation state
	http.HandleFunc("/api/orientation", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveState {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastState); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket: stream every state update
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}

		mu.Lock()
		clients[conn] = struct{}{}
		mu.Unlock()
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
