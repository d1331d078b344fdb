// Command ardrone-shell is an interactive flight console for the
// AR.Drone.
//
// It connects to the drone's command port, keeps the link alive with
// the communication watchdog, and exposes the flight commands as an
// interactive prompt. Telemetry is received on the navdata port and
// shown by the status command.
//
// Usage:
//
//	ardrone-shell [flags]
//
// Flags:
//
//	-config string        Configuration file path (YAML)
//	-drone string         Drone IP address (default "192.168.1.1")
//	-speed float          Movement speed in [0, 1] (default 0.1)
//	-watchdog duration    Keep-alive interval (default 200ms)
//	-no-navdata           Disable the telemetry receiver
//	-protocol-log string  Write protocol events to this file (CBOR)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Connect to a stock drone
//	ardrone-shell
//
//	# Record the whole exchange for ardrone-log
//	ardrone-shell -protocol-log flight.cbor
//
//	# Connect to a drone on another address, without telemetry
//	ardrone-shell -drone 10.0.0.5 -no-navdata
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardrone-protocol/ardrone-go/cmd/ardrone-shell/interactive"
	"github.com/ardrone-protocol/ardrone-go/pkg/client"
	"github.com/ardrone-protocol/ardrone-go/pkg/config"
	"github.com/ardrone-protocol/ardrone-go/pkg/log"
	"github.com/ardrone-protocol/ardrone-go/pkg/transport"
)

var flags struct {
	configFile  string
	droneAddr   string
	speed       float64
	watchdog    time.Duration
	noNavdata   bool
	protocolLog string
	logLevel    string
}

func init() {
	flag.StringVar(&flags.configFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.droneAddr, "drone", "", "Drone IP address")
	flag.Float64Var(&flags.speed, "speed", 0, "Movement speed in [0, 1]")
	flag.DurationVar(&flags.watchdog, "watchdog", 0, "Keep-alive interval")
	flag.BoolVar(&flags.noNavdata, "no-navdata", false, "Disable the telemetry receiver")
	flag.StringVar(&flags.protocolLog, "protocol-log", "", "Write protocol events to this file (CBOR)")
	flag.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, cfg.LogLevel)

	logger.Info("ardrone-shell",
		"drone", cfg.ControlAddr(),
		"watchdog", time.Duration(cfg.WatchdogInterval),
		"navdata", cfg.Navdata)

	// Protocol logging: file sink, plus the console at debug level.
	plog, closeLog, err := newProtocolLogger(logger, cfg.LogFile)
	if err != nil {
		logger.Error("failed to open protocol log", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	sender, err := transport.Dial(cfg.ControlAddr())
	if err != nil {
		logger.Error("failed to reach drone", "error", err)
		os.Exit(1)
	}

	sessCfg := client.Config{
		Sender:           sender,
		WatchdogInterval: time.Duration(cfg.WatchdogInterval),
		Speed:            cfg.Speed,
		ProtocolLogger:   plog,
		Logger:           logger,
	}
	if cfg.Navdata {
		sessCfg.NavdataAddr = cfg.NavdataAddr()
	}

	sess, err := client.Open(sessCfg)
	if err != nil {
		sender.Close()
		logger.Error("failed to open session", "error", err)
		os.Exit(1)
	}

	logger.Info("session open", "session_id", sess.ID())

	console, err := interactive.New(sess)
	if err != nil {
		sess.Close()
		logger.Error("failed to create console", "error", err)
		os.Exit(1)
	}

	// Redirect log output through readline to avoid interfering with
	// the prompt.
	logger = newLogger(console.Stdout(), cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go console.Run(ctx, cancel)

	// Wait for shutdown signal or console quit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
	}

	// Best effort: put the drone on the ground before dropping the
	// link.
	if err := sess.Land(); err != nil {
		logger.Warn("land on shutdown failed", "error", err)
	}

	if err := sess.Close(); err != nil {
		logger.Error("error closing session", "error", err)
	}
}

// loadConfig merges defaults, the optional config file and the flags,
// with flags taking precedence.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.Load(flags.configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flags.droneAddr != "" {
		cfg.DroneAddr = flags.droneAddr
	}
	if flags.speed != 0 {
		cfg.Speed = float32(flags.speed)
	}
	if flags.watchdog != 0 {
		cfg.WatchdogInterval = config.Duration(flags.watchdog)
	}
	if flags.noNavdata {
		cfg.Navdata = false
	}
	if flags.protocolLog != "" {
		cfg.LogFile = flags.protocolLog
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	return cfg, cfg.Validate()
}

// newLogger builds the console logger at the configured level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// newProtocolLogger builds the protocol event sink from the
// configuration: an optional CBOR file plus the console at debug
// level.
func newProtocolLogger(logger *slog.Logger, path string) (log.Logger, func(), error) {
	sinks := []log.Logger{log.NewSlogAdapter(logger)}
	closeLog := func() {}

	if path != "" {
		fl, err := log.NewFileLogger(path)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, fl)
		closeLog = func() { fl.Close() }
	}

	return log.NewMultiLogger(sinks...), closeLog, nil
}
