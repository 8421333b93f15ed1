package overlay

// trap contains keyboard focus inside one surface. Exactly one trap is active
// at a time; installing a new one replaces the previous without restoring its
// remembered focus, mirroring a single global "currently trapped root".
type trap struct {
	owner   Surface
	source  func() []Focusable
	restore Focusable
}

func newTrap(owner Surface, source func() []Focusable, previous Focusable) *trap {
	return &trap{owner: owner, source: source, restore: previous}
}

// focusables filters the surface's handles down to the enabled, visible ones,
// preserving document order.
func (t *trap) focusables() []Focusable {
	if t == nil || t.source == nil {
		return nil
	}
	all := t.source()
	kept := make([]Focusable, 0, len(all))
	for _, f := range all {
		if f == nil || !f.Enabled() || !f.Visible() {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// focusInitial moves focus to the first focusable handle, or to fallback when
// the surface has none.
func (t *trap) focusInitial(fallback Focusable) {
	focusable := t.focusables()
	if len(focusable) > 0 {
		focusable[0].Focus()
		return
	}
	if fallback != nil {
		fallback.Focus()
	}
}

// handleTab applies the wrap policy for a tab press while current holds
// focus. A forward tab on the last handle wraps to the first; a backward tab
// on the first wraps to the last. Every other press is left to default
// behaviour (handled=false). With no focusable handles the press is swallowed.
func (t *trap) handleTab(current Focusable, backward bool) bool {
	focusable := t.focusables()
	if len(focusable) == 0 {
		return true
	}

	first := focusable[0]
	last := focusable[len(focusable)-1]

	if backward && current == first {
		last.Focus()
		return true
	}
	if !backward && current == last {
		first.Focus()
		return true
	}
	return false
}

// release restores focus to the handle remembered at install time.
func (t *trap) release() {
	if t == nil || t.restore == nil {
		return
	}
	t.restore.Focus()
}
