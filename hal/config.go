package hal

import "log/slog"

// WindowConfig controls the window runner.
type WindowConfig struct {
	Title         string
	Width, Height int // initial window size in logical pixels
	Logger        *slog.Logger
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Width and Height set the viewport; the device scale is 1.
	Width, Height int
	// Snapshot, when set, receives the last frame as PNG.
	Snapshot string
	Logger   *slog.Logger
}
