package ui

import (
	"sync"
	"time"

	"github.com/sielo-candles/storefront/internal/schedule"
)

// DefaultToastDuration is how long a toast stays on screen before it
// dismisses itself.
const DefaultToastDuration = 2400 * time.Millisecond

// ToasterDeps wires a toaster's collaborators.
type ToasterDeps struct {
	// Scheduler drives auto-dismissal. Defaults to the real clock.
	Scheduler schedule.Scheduler
	// Duration a toast stays visible. Defaults to DefaultToastDuration.
	Duration time.Duration
	// OnShow is invoked with the message each time a toast appears.
	OnShow func(message string)
	// OnHide is invoked when the toast leaves the screen.
	OnHide func()
}

// Toaster shows one transient message at a time. Showing a new message while
// one is visible replaces it and restarts the dismissal countdown.
type Toaster struct {
	mu        sync.Mutex
	scheduler schedule.Scheduler
	duration  time.Duration
	onShow    func(string)
	onHide    func()
	message   string
	visible   bool
	timer     schedule.Timer
}

// NewToaster constructs a toaster.
func NewToaster(deps ToasterDeps) *Toaster {
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = schedule.NewReal()
	}
	duration := deps.Duration
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	onShow := deps.OnShow
	if onShow == nil {
		onShow = func(string) {}
	}
	onHide := deps.OnHide
	if onHide == nil {
		onHide = func() {}
	}
	return &Toaster{
		scheduler: scheduler,
		duration:  duration,
		onShow:    onShow,
		onHide:    onHide,
	}
}

// Show displays the message and arms the dismissal timer. A toast already on
// screen is replaced and its countdown starts over.
func (t *Toaster) Show(message string) {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.message = message
	t.visible = true
	t.timer = t.scheduler.AfterFunc(t.duration, t.dismiss)
	onShow := t.onShow
	t.mu.Unlock()

	onShow(message)
}

// Dismiss hides the toast immediately.
func (t *Toaster) Dismiss() {
	t.dismiss()
}

// Visible reports whether a toast is on screen, together with its message.
func (t *Toaster) Visible() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message, t.visible
}

func (t *Toaster) dismiss() {
	t.mu.Lock()
	if !t.visible {
		t.mu.Unlock()
		return
	}
	t.visible = false
	t.message = ""
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	onHide := t.onHide
	t.mu.Unlock()

	onHide()
}
