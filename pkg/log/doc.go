// Package log provides structured protocol logging for the drone link.
//
// This package defines the Logger interface and Event types for
// capturing protocol-level events at multiple layers (transport, wire,
// session). It is separate from operational logging (slog) - protocol
// capture provides a complete machine-readable trace of every command
// line, watchdog keep-alive and telemetry packet for debugging and
// post-flight analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For flight recording: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("flight.dlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Wire: outbound command lines (CommandEvent)
//   - Session: dispatcher state changes (StateChangeEvent)
//   - Transport: inbound telemetry (TelemetryEvent)
//
// Errors at any layer use a dedicated event type.
//
// # File Format
//
// Log files use CBOR encoding with .dlog extension. The ardrone-log CLI
// tool provides viewing and filtering.
package log
