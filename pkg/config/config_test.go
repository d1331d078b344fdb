package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.DroneAddr != "192.168.1.1" {
		t.Errorf("DroneAddr = %q, want 192.168.1.1", cfg.DroneAddr)
	}
	if got := cfg.ControlAddr(); got != "192.168.1.1:5556" {
		t.Errorf("ControlAddr() = %q, want 192.168.1.1:5556", got)
	}
	if got := cfg.NavdataAddr(); got != "192.168.1.1:5554" {
		t.Errorf("NavdataAddr() = %q, want 192.168.1.1:5554", got)
	}
	if time.Duration(cfg.WatchdogInterval) != 200*time.Millisecond {
		t.Errorf("WatchdogInterval = %v, want 200ms", time.Duration(cfg.WatchdogInterval))
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
drone_addr: 10.0.0.5
watchdog_interval: 50ms
speed: 0.3
log_file: /tmp/flight.cbor
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.DroneAddr != "10.0.0.5" {
		t.Errorf("DroneAddr = %q, want 10.0.0.5", cfg.DroneAddr)
	}
	if time.Duration(cfg.WatchdogInterval) != 50*time.Millisecond {
		t.Errorf("WatchdogInterval = %v, want 50ms", time.Duration(cfg.WatchdogInterval))
	}
	if cfg.Speed != 0.3 {
		t.Errorf("Speed = %v, want 0.3", cfg.Speed)
	}
	// Untouched fields keep their defaults.
	if cfg.ControlPort != 5556 {
		t.Errorf("ControlPort = %d, want 5556", cfg.ControlPort)
	}
	if !cfg.Navdata {
		t.Error("Navdata should default to true")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "drone_addr: [", "parse config"},
		{"bad address", "drone_addr: not-an-ip", "invalid drone_addr"},
		{"bad duration", "watchdog_interval: soon", "invalid duration"},
		{"negative speed", "speed: -0.5", "out of range"},
		{"speed above one", "speed: 1.5", "out of range"},
		{"bad port", "control_port: 70000", "out of range"},
		{"bad level", "log_level: loud", "unknown log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drone.yaml")
	data := "drone_addr: 192.168.1.1\nwatchdog_interval: 100ms\nnavdata: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Navdata {
		t.Error("Navdata should be false")
	}
	if time.Duration(cfg.WatchdogInterval) != 100*time.Millisecond {
		t.Errorf("WatchdogInterval = %v, want 100ms", time.Duration(cfg.WatchdogInterval))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}
