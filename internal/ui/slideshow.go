// Package ui holds the timed presentation helpers behind the storefront
// chrome: the hero slideshow rotation and the transient toast queue.
package ui

import (
	"sync"
	"time"

	"github.com/sielo-candles/storefront/internal/schedule"
)

// DefaultSlideInterval is the pause between automatic slide advances.
const DefaultSlideInterval = 3800 * time.Millisecond

// SlideshowDeps wires a slideshow's collaborators.
type SlideshowDeps struct {
	// Scheduler drives the rotation. Defaults to the real clock.
	Scheduler schedule.Scheduler
	// Interval between advances. Defaults to DefaultSlideInterval.
	Interval time.Duration
	// OnShow is invoked with the index of the slide to display.
	OnShow func(index int)
}

// Slideshow cycles through a fixed set of slides on a timer. With one slide
// or none the timer never arms.
type Slideshow struct {
	mu        sync.Mutex
	scheduler schedule.Scheduler
	interval  time.Duration
	onShow    func(int)
	count     int
	current   int
	timer     schedule.Timer
	running   bool
}

// NewSlideshow constructs a slideshow over count slides.
func NewSlideshow(count int, deps SlideshowDeps) *Slideshow {
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = schedule.NewReal()
	}
	interval := deps.Interval
	if interval <= 0 {
		interval = DefaultSlideInterval
	}
	onShow := deps.OnShow
	if onShow == nil {
		onShow = func(int) {}
	}
	if count < 0 {
		count = 0
	}
	return &Slideshow{
		scheduler: scheduler,
		interval:  interval,
		onShow:    onShow,
		count:     count,
	}
}

// Start shows the first slide and arms the rotation timer. Starting an
// already-running slideshow is a no-op.
func (s *Slideshow) Start() {
	s.mu.Lock()
	if s.running || s.count == 0 {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.current = 0
	onShow := s.onShow
	s.armLocked()
	s.mu.Unlock()

	onShow(0)
}

// Stop cancels the pending advance. The current slide stays on screen.
func (s *Slideshow) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Current returns the index of the slide on screen.
func (s *Slideshow) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Running reports whether the rotation timer is armed.
func (s *Slideshow) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Slideshow) armLocked() {
	if s.count <= 1 {
		return
	}
	s.timer = s.scheduler.AfterFunc(s.interval, s.advance)
}

func (s *Slideshow) advance() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.current = (s.current + 1) % s.count
	index := s.current
	onShow := s.onShow
	s.armLocked()
	s.mu.Unlock()

	onShow(index)
}
