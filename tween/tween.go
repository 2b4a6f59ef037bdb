// Package tween interpolates values over time.
//
// A Scheduler is driven by the caller's clock: Step is called once per frame
// with the elapsed time and applies every running tween. Nothing runs in the
// background.
package tween

import (
	"math"
	"time"
)

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

// Power1Out decelerates quadratically.
func Power1Out(t float64) float64 { return 1 - (1-t)*(1-t) }

// Power1InOut accelerates then decelerates.
func Power1InOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Tween moves a value from From to To over Duration.
type Tween struct {
	// Key identifies the animated property. Starting a tween with the same
	// non-empty key replaces the running one.
	Key string

	From, To float64
	Duration time.Duration
	Ease     Ease // Power1Out when nil

	Set        func(v float64)
	OnComplete func()

	start time.Duration
}

// Value returns the tween's value at now.
func (tw *Tween) Value(now time.Duration) float64 {
	return tw.From + (tw.To-tw.From)*tw.ease()(tw.progress(now))
}

func (tw *Tween) ease() Ease {
	if tw.Ease == nil {
		return Power1Out
	}
	return tw.Ease
}

func (tw *Tween) progress(now time.Duration) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	p := float64(now-tw.start) / float64(tw.Duration)
	return math.Max(0, math.Min(1, p))
}

// Scheduler runs tweens. It is not safe for concurrent use.
type Scheduler struct {
	active []*Tween
}

// Start begins tw at now and returns it. The first value is applied by the
// next Step.
func (s *Scheduler) Start(now time.Duration, tw Tween) *Tween {
	t := &tw
	t.start = now
	if t.Key != "" {
		for i, a := range s.active {
			if a.Key == t.Key {
				s.active = append(s.active[:i], s.active[i+1:]...)
				break
			}
		}
	}
	s.active = append(s.active, t)
	return t
}

// Step applies every running tween at now and retires the finished ones.
// Finished tweens land exactly on To.
func (s *Scheduler) Step(now time.Duration) {
	kept := s.active[:0]
	var done []*Tween
	for _, t := range s.active {
		finished := t.progress(now) >= 1
		v := t.Value(now)
		if finished {
			v = t.To
		}
		if t.Set != nil {
			t.Set(v)
		}
		if finished {
			done = append(done, t)
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
	for _, t := range done {
		if t.OnComplete != nil {
			t.OnComplete()
		}
	}
}

// Running reports whether a tween with key is active.
func (s *Scheduler) Running(key string) bool {
	for _, t := range s.active {
		if t.Key == key {
			return true
		}
	}
	return false
}

func (s *Scheduler) Len() int { return len(s.active) }
