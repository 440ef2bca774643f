package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now))

	for range 59 {
		clock.advance(time.Second / 60)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, p.FPS())

	// 60 steps of time.Second/60 truncate short of a full second.
	clock.advance(time.Second - 59*(time.Second/60))
	assert.True(t, p.Tick())
	assert.InDelta(t, 60.0, p.FPS(), 0.01)

	clock.advance(time.Millisecond)
	assert.False(t, p.Tick())
}

func TestWithUpdateInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithUpdateInterval(100*time.Millisecond))

	clock.advance(50 * time.Millisecond)
	assert.False(t, p.Tick())
	clock.advance(50 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 20.0, p.FPS(), 0.01)

	q := NewProfiler(WithUpdateInterval(-1))
	assert.Equal(t, time.Second, q.updateInterval)
}
