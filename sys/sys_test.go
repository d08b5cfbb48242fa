package sys

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestBytesTo(t *testing.T) {
	tests := []struct {
		bytes     int64
		unit      string
		blockSize int
		want      float64
	}{
		{1024, "k", 1024, 1},
		{1048576, "m", 1024, 1},
		{1048576, "MB", 0, 1},
		{314575262000000, "m", 1024, 300002347.946167},
		{3000000000, "g", 1000, 3},
		{1 << 40, "t", 1024, 1},
		{1 << 60, "e", 1024, 1},
	}
	for _, tt := range tests {
		got, err := BytesTo(tt.bytes, tt.unit, tt.blockSize)
		assert.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-6, "%d %s", tt.bytes, tt.unit)
	}
}

func TestBytesToUnknownUnit(t *testing.T) {
	for _, unit := range []string{"", "x", "bytes"} {
		_, err := BytesTo(1024, unit, 1024)
		assert.True(t, errors.Is(err, ErrUnknownUnit), unit)
	}
}

func TestProbFrom(t *testing.T) {
	roll := func(v float64) func() float64 { return func() float64 { return v } }
	assert.True(t, ProbFrom(roll(0.01), 0.02))
	assert.False(t, ProbFrom(roll(0.02), 0.02))
	assert.False(t, ProbFrom(roll(0), 0))
	assert.True(t, ProbFrom(roll(0.99), 1))
}

func TestProb(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.False(t, Prob(0))
		assert.True(t, Prob(1))
	}
}

func TestSecondsToWait(t *testing.T) {
	tests := []struct {
		msg  string
		want int
	}{
		{"you are doing that too much. try again in 3 minutes.", 240},
		{"try again in 1 minute", 120},
		{"try again in 10 minutes", 660},
		{"Try again in 9 Minutes", 600},
		{"try again in a few seconds", DefaultWaitSeconds},
		{"", DefaultWaitSeconds},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SecondsToWait(tt.msg), tt.msg)
	}
}

func TestHostMemory(t *testing.T) {
	m, err := HostMemory(context.Background())
	assert.NoError(t, err)
	assert.NotZero(t, m.Total)
	assert.LessOrEqual(t, m.Available, m.Total)
}
