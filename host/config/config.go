// Package config loads the host tool configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the monitor configuration.
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Decoder DecoderConfig `yaml:"decoder"`
	Stdout  StdoutConfig  `yaml:"stdout"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Modbus  ModbusConfig  `yaml:"modbus"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port        string        `yaml:"port"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// DecoderConfig sizes the stream decoder.
type DecoderConfig struct {
	BufferSize int `yaml:"buffer_size"`
}

// StdoutConfig controls printing of samples.
type StdoutConfig struct {
	Enabled bool `yaml:"enabled"`
	MilliG  bool `yaml:"milli_g"` // print scaled values instead of raw counts
}

// MQTTConfig publishes samples to a broker.
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
	Retained bool   `yaml:"retained"`
}

// ModbusConfig mirrors samples into holding registers of a Modbus TCP server.
type ModbusConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Endpoint string        `yaml:"endpoint"`
	UnitID   uint8         `yaml:"unit_id"`
	Address  uint16        `yaml:"address"` // first register; X then Y
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:        "/dev/ttyUSB0",
			Baud:        9600,
			ReadTimeout: 100 * time.Millisecond,
		},
		Decoder: DecoderConfig{
			BufferSize: 4096,
		},
		Stdout: StdoutConfig{
			Enabled: true,
		},
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "accel-monitor",
			Topic:    "accelstream/sample",
		},
		Modbus: ModbusConfig{
			Endpoint: "localhost:502",
			UnitID:   1,
			Timeout:  time.Second,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Serial.Port == "" {
		errs = append(errs, errors.New("serial.port is required"))
	}
	if c.Serial.Baud <= 0 {
		errs = append(errs, fmt.Errorf("serial.baud must be positive, got %d", c.Serial.Baud))
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker == "" || c.MQTT.Topic == "" {
			errs = append(errs, errors.New("mqtt.broker and mqtt.topic are required"))
		}
		if c.MQTT.QoS > 2 {
			errs = append(errs, fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS))
		}
	}
	if c.Modbus.Enabled && c.Modbus.Endpoint == "" {
		errs = append(errs, errors.New("modbus.endpoint is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}
	if c.Serial.ReadTimeout == 0 {
		c.Serial.ReadTimeout = def.Serial.ReadTimeout
	}
	if c.Decoder.BufferSize == 0 {
		c.Decoder.BufferSize = def.Decoder.BufferSize
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = def.MQTT.ClientID
	}
	if c.Modbus.Timeout == 0 {
		c.Modbus.Timeout = def.Modbus.Timeout
	}
	if c.Modbus.UnitID == 0 {
		c.Modbus.UnitID = def.Modbus.UnitID
	}
}
