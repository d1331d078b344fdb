package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ardrone-protocol/ardrone-go/pkg/client"
	"github.com/ardrone-protocol/ardrone-go/pkg/transport"
)

// Duration wraps time.Duration with YAML support for values like
// "200ms" or "1.5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds the client configuration.
type Config struct {
	// DroneAddr is the drone's IP address.
	DroneAddr string `yaml:"drone_addr"`

	// ControlPort is the UDP port for AT commands.
	ControlPort int `yaml:"control_port"`

	// NavdataPort is the UDP port for telemetry.
	NavdataPort int `yaml:"navdata_port"`

	// Navdata enables the telemetry receiver.
	Navdata bool `yaml:"navdata"`

	// WatchdogInterval is the keep-alive period.
	WatchdogInterval Duration `yaml:"watchdog_interval"`

	// Speed is the initial relative movement speed in [0, 1].
	Speed float32 `yaml:"speed"`

	// LogFile is the protocol log destination. Empty disables
	// file logging.
	LogFile string `yaml:"log_file"`

	// LogLevel is the console log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration for a stock drone in
// access-point mode.
func Default() Config {
	return Config{
		DroneAddr:        transport.DefaultDroneAddr,
		ControlPort:      transport.ControlPort,
		NavdataPort:      transport.NavdataPort,
		Navdata:          true,
		WatchdogInterval: Duration(client.DefaultWatchdogInterval),
		Speed:            client.DefaultSpeed,
		LogLevel:         "info",
	}
}

// Parse decodes YAML data over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.DroneAddr == "" {
		return fmt.Errorf("drone_addr must not be empty")
	}
	if net.ParseIP(c.DroneAddr) == nil {
		return fmt.Errorf("invalid drone_addr %q", c.DroneAddr)
	}
	if c.ControlPort < 1 || c.ControlPort > 65535 {
		return fmt.Errorf("control_port %d out of range", c.ControlPort)
	}
	if c.NavdataPort < 1 || c.NavdataPort > 65535 {
		return fmt.Errorf("navdata_port %d out of range", c.NavdataPort)
	}
	if c.WatchdogInterval <= 0 {
		return fmt.Errorf("watchdog_interval must be positive")
	}
	if c.Speed < 0 || c.Speed > 1 {
		return fmt.Errorf("speed %v out of range [0, 1]", c.Speed)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// ControlAddr returns the host:port address of the command channel.
func (c Config) ControlAddr() string {
	return net.JoinHostPort(c.DroneAddr, strconv.Itoa(c.ControlPort))
}

// NavdataAddr returns the host:port address of the telemetry channel.
func (c Config) NavdataAddr() string {
	return net.JoinHostPort(c.DroneAddr, strconv.Itoa(c.NavdataPort))
}
