package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualFiresOnlyWhenAdvanced(t *testing.T) {
	m := NewManual()
	fired := 0
	m.AfterFunc(100*time.Millisecond, func() { fired++ })

	assert.Equal(t, 0, fired)
	m.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, fired)
	m.Advance(1 * time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, m.Pending())
}

func TestManualFiresInDueOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "late") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })

	m.Advance(time.Second)
	assert.Equal(t, []string{"early", "late"}, order)
}

func TestManualStopCancelsPendingWork(t *testing.T) {
	m := NewManual()
	fired := false
	timer := m.AfterFunc(50*time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports already cancelled")

	m.Advance(time.Second)
	assert.False(t, fired)
}

func TestManualCallbackMayReschedule(t *testing.T) {
	m := NewManual()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 3 {
			m.AfterFunc(10*time.Millisecond, tick)
		}
	}
	m.AfterFunc(10*time.Millisecond, tick)

	// One large advance drains the whole chain.
	m.Advance(time.Second)
	assert.Equal(t, 3, ticks)
}

func TestRealSchedulerFires(t *testing.T) {
	s := NewReal()
	done := make(chan struct{})
	s.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}
