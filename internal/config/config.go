package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// Sensor
	SensorDevicePath string
	PollInterval     int // milliseconds

	// MQTT
	MQTTBroker          string
	MQTTClientIDDaemon  string
	MQTTClientIDConsole string
	MQTTClientIDWeb     string
	MQTTClientIDMock    string

	// Topics
	TopicOrientation string

	// Web Server
	WebServerPort int

	// Optional integrations
	LidCheck         bool
	TabletModeSwitch bool
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access.
//
// External code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{
		// Defaults; overridden by the file.
		TopicOrientation: "laptop/orientation",
		WebServerPort:    8080,
	}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Sensor
	case "SENSOR_DEVICE_PATH":
		c.SensorDevicePath = value
	case "POLL_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid POLL_INTERVAL %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("POLL_INTERVAL must be positive, got %d", interval)
		}
		c.PollInterval = interval

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_DAEMON":
		c.MQTTClientIDDaemon = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_MOCK":
		c.MQTTClientIDMock = value

	// Topics
	case "TOPIC_ORIENTATION":
		c.TopicOrientation = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Optional integrations
	case "LID_CHECK":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid LID_CHECK %q: %w", value, err)
		}
		c.LidCheck = enabled
	case "TABLET_MODE_SWITCH":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid TABLET_MODE_SWITCH %q: %w", value, err)
		}
		c.TabletModeSwitch = enabled

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.SensorDevicePath == "" {
		return fmt.Errorf("SENSOR_DEVICE_PATH is required")
	}
	if c.PollInterval == 0 {
		return fmt.Errorf("POLL_INTERVAL is required")
	}
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
