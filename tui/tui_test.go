package tui

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasTTY(t *testing.T) {
	assert.Contains(t, []bool{true, false}, HasTTY)
}

func TestCountdown(t *testing.T) {
	var buf bytes.Buffer
	var slept []time.Duration
	err := Countdown(context.Background(), &buf, 3, func(d time.Duration) { slept = append(slept, d) })
	assert.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, slept)
	out := buf.String()
	assert.Contains(t, out, "waking up in: 3")
	assert.Contains(t, out, "waking up in: 2")
	assert.Contains(t, out, "waking up in: 1")
	assert.NotContains(t, out, "waking up in: 0")
}

func TestCountdownZero(t *testing.T) {
	var buf bytes.Buffer
	called := false
	assert.NoError(t, Countdown(context.Background(), &buf, 0, func(time.Duration) { called = true }))
	assert.False(t, called)
}

func TestCountdownCancel(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := Countdown(ctx, &buf, 10, func(time.Duration) {
		ticks++
		if ticks == 2 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, ticks)
}
