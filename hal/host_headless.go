package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// RunHeadless runs the program without opening a window. Time advances by
// exactly one tick per step, whatever the wall clock does.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newProgram func(HAL) (Program, error)) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 320, 240
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	clock := &tickClock{step: d}
	h := newHost(cfg.Logger, clock)
	prog, err := newProgram(h)
	if err != nil {
		return err
	}
	prog.Resize(Viewport{Width: cfg.Width, Height: cfg.Height, DeviceScale: 1})

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if err := writeSnapshot(cfg.Snapshot, h.fb); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			clock.advance()
			if err := prog.Step(); err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return writeSnapshot(cfg.Snapshot, h.fb)
			}
		}
	}
}

func writeSnapshot(path string, fb *hostFramebuffer) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hal: snapshot %s: %w", path, err)
	}
	if err := png.Encode(f, fb.snapshot(nil)); err != nil {
		f.Close()
		return fmt.Errorf("hal: snapshot %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("hal: snapshot %s: %w", path, err)
	}
	return nil
}
