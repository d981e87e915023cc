package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	now := time.Unix(100, 0)
	p := NewProfiler(
		WithLogger(zap.New(core)),
		WithInterval(time.Second),
		WithClock(func() time.Time { return now }),
	)

	for i := 0; i < 9; i++ {
		now = now.Add(100 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	now = now.Add(100 * time.Millisecond)
	require.True(t, p.Tick(zap.Int("tweens", 3)))

	require.Equal(t, 1, logs.FilterMessage("frame stats").Len())
	fields := logs.All()[0].ContextMap()
	assert.InDelta(t, 10, fields["fps"], 1e-9)
	assert.Equal(t, int64(3), fields["tweens"])
	assert.InDelta(t, 10, p.FPS(), 1e-9)

	now = now.Add(100 * time.Millisecond)
	assert.False(t, p.Tick(), "the counter restarts after logging")
}
