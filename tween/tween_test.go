package tween

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEases(t *testing.T) {
	for name, e := range map[string]Ease{"linear": Linear, "power1.out": Power1Out, "power1.inOut": Power1InOut} {
		assert.InDelta(t, 0, e(0), 1e-12, name)
		assert.InDelta(t, 1, e(1), 1e-12, name)
	}
	assert.InDelta(t, 0.75, Power1Out(0.5), 1e-12)
	assert.InDelta(t, 0.5, Power1InOut(0.5), 1e-12)
}

func TestTweenEndsExactlyOnTarget(t *testing.T) {
	var s Scheduler
	var got float64
	completed := 0
	s.Start(2*time.Second, Tween{
		From: 1, To: 1 + 2*math.Pi, Duration: time.Second,
		Set:        func(v float64) { got = v },
		OnComplete: func() { completed++ },
	})

	s.Step(2 * time.Second)
	assert.InDelta(t, 1, got, 1e-12)

	s.Step(2500 * time.Millisecond)
	assert.InDelta(t, 1+2*math.Pi*0.75, got, 1e-9)
	assert.Equal(t, 1, s.Len())

	s.Step(3100 * time.Millisecond)
	assert.Equal(t, 1+2*math.Pi, got)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, completed)

	s.Step(4 * time.Second)
	assert.Equal(t, 1, completed)
}

func TestStartReplacesSameKey(t *testing.T) {
	var s Scheduler
	var a, b float64
	s.Start(0, Tween{Key: "x", To: 10, Duration: time.Second, Ease: Linear, Set: func(v float64) { a = v }})
	s.Start(0, Tween{Key: "y", To: 10, Duration: time.Second, Ease: Linear, Set: func(v float64) { b = v }})
	s.Step(500 * time.Millisecond)
	require.Equal(t, 2, s.Len())

	s.Start(500*time.Millisecond, Tween{Key: "x", From: a, To: a + 10, Duration: time.Second, Ease: Linear, Set: func(v float64) { a = v }})
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Running("x"))

	s.Step(time.Second)
	assert.InDelta(t, 10, a, 1e-9)
	assert.InDelta(t, 10, b, 1e-9)
	assert.False(t, s.Running("y"))
	assert.True(t, s.Running("x"))
}

func TestZeroDurationAppliesTarget(t *testing.T) {
	var s Scheduler
	var got float64
	s.Start(0, Tween{From: 3, To: 7, Set: func(v float64) { got = v }})
	s.Step(0)
	assert.Equal(t, float64(7), got)
	assert.Equal(t, 0, s.Len())
}
