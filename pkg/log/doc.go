// Package log provides structured protocol logging for Lattice.
//
// This package defines the Logger interface and Event type for capturing
// interaction-level events: one event per dispatched exchange, recording
// the interaction kind, the elements produced, and how the exchange ended.
// It is separate from operational logging (slog) - protocol capture
// provides a complete machine-readable trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	interaction.WithLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/lattice/node.llog")
//	interaction.WithLogger(fl)
//
//	// Both: use MultiLogger
//	interaction.WithLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	))
//
// # File Format
//
// Log files use CBOR encoding with .llog extension. Reader decodes a
// stream back into events, optionally filtered.
package log
