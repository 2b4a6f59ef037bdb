package hal

import (
	"context"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordProgram struct {
	h       HAL
	resizes []Viewport
	steps   int
	times   []time.Duration
	failAt  int
}

func (p *recordProgram) Resize(v Viewport) {
	p.resizes = append(p.resizes, v)
	p.h.Display().Framebuffer().Resize(v.Width, v.Height)
}

func (p *recordProgram) Step() error {
	p.steps++
	p.times = append(p.times, p.h.Clock().Elapsed())
	if p.failAt > 0 && p.steps == p.failAt {
		return errors.New("boom")
	}
	img := p.h.Display().Framebuffer().Image()
	img.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	return nil
}

func TestRunHeadlessTicks(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "frame.png")
	p := &recordProgram{}
	err := RunHeadless(context.Background(), HeadlessConfig{Hz: 1000, Ticks: 3, Width: 40, Height: 30, Snapshot: snap},
		func(h HAL) (Program, error) {
			p.h = h
			return p, nil
		})
	require.NoError(t, err)

	assert.Equal(t, 3, p.steps)
	assert.Equal(t, []Viewport{{Width: 40, Height: 30, DeviceScale: 1}}, p.resizes)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond}, p.times)

	f, err := os.Open(snap)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
}

func TestRunHeadlessStepError(t *testing.T) {
	p := &recordProgram{failAt: 2}
	err := RunHeadless(context.Background(), HeadlessConfig{Hz: 1000}, func(h HAL) (Program, error) {
		p.h = h
		return p, nil
	})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 2, p.steps)
}

func TestRunHeadlessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, HeadlessConfig{}, func(h HAL) (Program, error) {
		return &recordProgram{h: h}, nil
	})
	assert.Equal(t, context.Canceled, err)
}

func TestRunHeadlessCanceledSnapshotError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap := filepath.Join(t.TempDir(), "missing", "frame.png")
	err := RunHeadless(ctx, HeadlessConfig{Width: 8, Height: 8, Snapshot: snap}, func(h HAL) (Program, error) {
		return &recordProgram{h: h}, nil
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "snapshot")
}

func TestRunHeadlessProgramError(t *testing.T) {
	want := errors.New("no program")
	err := RunHeadless(context.Background(), HeadlessConfig{}, func(HAL) (Program, error) { return nil, want })
	assert.ErrorIs(t, err, want)
}

func TestFramebufferResize(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	img := fb.Image()
	assert.Equal(t, 4, fb.Width())

	fb.Resize(4, 3)
	assert.Same(t, img, fb.Image(), "same size keeps the image")

	fb.Resize(8, 0)
	assert.Equal(t, 8, fb.Width())
	assert.Equal(t, 1, fb.Height())
}

func TestInputChannelsDropWhenFull(t *testing.T) {
	h := newHost(nil, &tickClock{step: time.Millisecond})
	for i := 0; i < 1000; i++ {
		h.ptr.emit(PointerEvent{Kind: PointerMove})
		h.kbd.emit(KeyEvent{Rune: 'x'})
	}
	assert.Len(t, h.Input().Pointer().Events(), 256)
	assert.Len(t, h.Input().Keyboard().Events(), 64)
	assert.NotNil(t, h.Logger())
}
