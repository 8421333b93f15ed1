package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sielo-candles/storefront/internal/schedule"
)

func TestSlideshowAdvancesOnInterval(t *testing.T) {
	clock := schedule.NewManual()
	var shown []int
	s := NewSlideshow(3, SlideshowDeps{
		Scheduler: clock,
		OnShow:    func(i int) { shown = append(shown, i) },
	})

	s.Start()
	assert.Equal(t, []int{0}, shown)
	assert.Equal(t, 0, s.Current())

	clock.Advance(DefaultSlideInterval)
	assert.Equal(t, []int{0, 1}, shown)

	clock.Advance(DefaultSlideInterval)
	clock.Advance(DefaultSlideInterval)
	assert.Equal(t, []int{0, 1, 2, 0}, shown, "rotation wraps to the first slide")
}

func TestSlideshowDoesNotAdvanceEarly(t *testing.T) {
	clock := schedule.NewManual()
	s := NewSlideshow(2, SlideshowDeps{Scheduler: clock})

	s.Start()
	clock.Advance(DefaultSlideInterval - time.Millisecond)
	assert.Equal(t, 0, s.Current())
	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, s.Current())
}

func TestSlideshowSingleSlideNeverRotates(t *testing.T) {
	clock := schedule.NewManual()
	var shown []int
	s := NewSlideshow(1, SlideshowDeps{
		Scheduler: clock,
		OnShow:    func(i int) { shown = append(shown, i) },
	})

	s.Start()
	clock.Advance(time.Hour)
	assert.Equal(t, []int{0}, shown)
	assert.Equal(t, 0, clock.Pending(), "no timer armed for a single slide")
}

func TestSlideshowEmptyStartIsNoOp(t *testing.T) {
	clock := schedule.NewManual()
	s := NewSlideshow(0, SlideshowDeps{Scheduler: clock})

	s.Start()
	assert.False(t, s.Running())
	assert.Equal(t, 0, clock.Pending())
}

func TestSlideshowStopHaltsRotation(t *testing.T) {
	clock := schedule.NewManual()
	s := NewSlideshow(3, SlideshowDeps{Scheduler: clock})

	s.Start()
	clock.Advance(DefaultSlideInterval)
	assert.Equal(t, 1, s.Current())

	s.Stop()
	clock.Advance(10 * DefaultSlideInterval)
	assert.Equal(t, 1, s.Current(), "current slide stays put after stop")
	assert.False(t, s.Running())
}

func TestSlideshowStartWhileRunningIsNoOp(t *testing.T) {
	clock := schedule.NewManual()
	var shown []int
	s := NewSlideshow(3, SlideshowDeps{
		Scheduler: clock,
		OnShow:    func(i int) { shown = append(shown, i) },
	})

	s.Start()
	clock.Advance(DefaultSlideInterval)
	s.Start()

	assert.Equal(t, []int{0, 1}, shown)
	assert.Equal(t, 1, s.Current())
}

func TestSlideshowCustomInterval(t *testing.T) {
	clock := schedule.NewManual()
	s := NewSlideshow(2, SlideshowDeps{Scheduler: clock, Interval: time.Second})

	s.Start()
	clock.Advance(time.Second)
	assert.Equal(t, 1, s.Current())
}
