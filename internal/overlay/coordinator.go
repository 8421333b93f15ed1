package overlay

// CoordinatorDeps wires the presentation callbacks. Every dependency is
// optional: a nil backdrop or focus reader degrades to a no-op, never an
// error.
type CoordinatorDeps struct {
	// Backdrop toggles the shared backdrop element.
	Backdrop func(visible bool)
	// ActiveFocus reports the handle currently holding keyboard focus, used
	// to remember where focus should return when a trap releases.
	ActiveFocus func() Focusable
}

// Coordinator tracks which surfaces are open, owns the shared backdrop, and
// holds the single active focus trap.
type Coordinator struct {
	presenters  map[Surface]Presenter
	open        map[Surface]bool
	backdrop    func(bool)
	activeFocus func() Focusable
	trap        *trap
}

// NewCoordinator constructs a coordinator with no registered surfaces.
func NewCoordinator(deps CoordinatorDeps) *Coordinator {
	backdrop := deps.Backdrop
	if backdrop == nil {
		backdrop = func(bool) {}
	}
	activeFocus := deps.ActiveFocus
	if activeFocus == nil {
		activeFocus = func() Focusable { return nil }
	}
	return &Coordinator{
		presenters:  map[Surface]Presenter{},
		open:        map[Surface]bool{},
		backdrop:    backdrop,
		activeFocus: activeFocus,
	}
}

// Register attaches the presentation node for a surface. Surfaces left
// unregistered stay inert.
func (c *Coordinator) Register(surface Surface, p Presenter) {
	if c == nil || p == nil {
		return
	}
	c.presenters[surface] = p
}

// Open shows the surface, turns the backdrop on, and installs the focus trap
// scoped to the surface. Opening over an already-open surface replaces the
// active trap; the new trap remembers whatever held focus at that moment.
func (c *Coordinator) Open(surface Surface) {
	p, ok := c.presenters[surface]
	if !ok {
		return
	}

	c.backdrop(true)
	c.open[surface] = true
	p.SetVisible(true)

	c.trap = newTrap(surface, p.Focusables, c.activeFocus())
	c.trap.focusInitial(surfaceFallback(p))
}

// Close hides the surface and releases the active trap, restoring focus to
// the handle remembered at install time. The backdrop goes dark only when no
// surface remains open.
func (c *Coordinator) Close(surface Surface) {
	p, ok := c.presenters[surface]
	if !ok {
		return
	}

	c.open[surface] = false
	p.SetVisible(false)

	if !c.anyOpen() {
		c.backdrop(false)
	}
	c.releaseTrap()
}

// CloseAll closes every open surface in one batch. Backdrop click and the
// global escape listener both route here.
func (c *Coordinator) CloseAll() {
	for _, surface := range Surfaces() {
		if !c.open[surface] {
			continue
		}
		if p, ok := c.presenters[surface]; ok {
			p.SetVisible(false)
		}
		c.open[surface] = false
	}
	c.backdrop(false)
	c.releaseTrap()
}

// BackdropClicked handles a click on the shared backdrop.
func (c *Coordinator) BackdropClicked() {
	c.CloseAll()
}

// HandleKey routes a keyboard event: Escape closes everything, Tab is offered
// to the active trap's wrap policy. The return value reports whether the
// event was consumed and default handling should be suppressed.
func (c *Coordinator) HandleKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEscape:
		c.CloseAll()
		return true
	case KeyTab:
		if c.trap == nil {
			return false
		}
		return c.trap.handleTab(c.activeFocus(), ev.Shift)
	default:
		return false
	}
}

// IsOpen reports whether the surface is currently visible.
func (c *Coordinator) IsOpen(surface Surface) bool {
	return c.open[surface]
}

// BackdropVisible reports whether at least one surface is visible.
func (c *Coordinator) BackdropVisible() bool {
	return c.anyOpen()
}

// TrapOwner returns the surface owning keyboard focus containment.
func (c *Coordinator) TrapOwner() (Surface, bool) {
	if c.trap == nil {
		return "", false
	}
	return c.trap.owner, true
}

func (c *Coordinator) anyOpen() bool {
	for _, open := range c.open {
		if open {
			return true
		}
	}
	return false
}

func (c *Coordinator) releaseTrap() {
	if c.trap == nil {
		return
	}
	c.trap.release()
	c.trap = nil
}

// surfaceFallback lets a presenter act as the focus target when the surface
// has no focusable descendants.
func surfaceFallback(p Presenter) Focusable {
	if f, ok := p.(Focusable); ok {
		return f
	}
	return nil
}
