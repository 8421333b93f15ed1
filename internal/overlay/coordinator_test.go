package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv simulates the presentation layer: a backdrop flag, a set of
// surfaces with focusable handles, and a single "currently focused" pointer.
type fakeEnv struct {
	backdrop bool
	focused  Focusable
	focusLog []string
}

func (e *fakeEnv) deps() CoordinatorDeps {
	return CoordinatorDeps{
		Backdrop:    func(visible bool) { e.backdrop = visible },
		ActiveFocus: func() Focusable { return e.focused },
	}
}

type fakeHandle struct {
	env     *fakeEnv
	name    string
	enabled bool
	visible bool
}

func (h *fakeHandle) Focus() {
	h.env.focused = h
	h.env.focusLog = append(h.env.focusLog, h.name)
}
func (h *fakeHandle) Enabled() bool { return h.enabled }
func (h *fakeHandle) Visible() bool { return h.visible }

type fakePresenter struct {
	env     *fakeEnv
	visible bool
	handles []Focusable
}

func (p *fakePresenter) SetVisible(visible bool) { p.visible = visible }
func (p *fakePresenter) Focusables() []Focusable { return p.handles }

func newHandle(env *fakeEnv, name string) *fakeHandle {
	return &fakeHandle{env: env, name: name, enabled: true, visible: true}
}

func newSurface(env *fakeEnv, names ...string) *fakePresenter {
	p := &fakePresenter{env: env}
	for _, name := range names {
		p.handles = append(p.handles, newHandle(env, name))
	}
	return p
}

func TestOpenShowsSurfaceBackdropAndTrap(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	drawer := newSurface(env, "close", "checkout")
	c.Register(SurfaceCartDrawer, drawer)

	c.Open(SurfaceCartDrawer)

	assert.True(t, drawer.visible)
	assert.True(t, env.backdrop)
	assert.True(t, c.IsOpen(SurfaceCartDrawer))
	assert.True(t, c.BackdropVisible())

	owner, ok := c.TrapOwner()
	require.True(t, ok)
	assert.Equal(t, SurfaceCartDrawer, owner)

	// Focus moved to the first focusable handle.
	assert.Equal(t, []string{"close"}, env.focusLog)
}

func TestUnregisteredSurfaceIsSilentNoOp(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())

	c.Open(SurfaceGuide)
	c.Close(SurfaceGuide)

	assert.False(t, env.backdrop)
	assert.False(t, c.IsOpen(SurfaceGuide))
	_, ok := c.TrapOwner()
	assert.False(t, ok)
}

func TestBackdropStaysOnUntilLastSurfaceCloses(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	drawer := newSurface(env, "a")
	detail := newSurface(env, "b")
	c.Register(SurfaceCartDrawer, drawer)
	c.Register(SurfaceProductDetail, detail)

	c.Open(SurfaceCartDrawer)
	c.Open(SurfaceProductDetail) // over the drawer, without closing it

	assert.True(t, env.backdrop)
	assert.True(t, c.IsOpen(SurfaceCartDrawer))
	assert.True(t, c.IsOpen(SurfaceProductDetail))

	c.Close(SurfaceProductDetail)
	assert.True(t, env.backdrop, "drawer still open, backdrop stays visible")

	c.Close(SurfaceCartDrawer)
	assert.False(t, env.backdrop, "backdrop hides only after the second close")
}

func TestOpenOverOpenReplacesTrapOwner(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	c.Register(SurfaceCartDrawer, newSurface(env, "a"))
	c.Register(SurfaceCheckout, newSurface(env, "b"))

	c.Open(SurfaceCartDrawer)
	c.Open(SurfaceCheckout)

	owner, ok := c.TrapOwner()
	require.True(t, ok)
	assert.Equal(t, SurfaceCheckout, owner)
}

func TestCloseAllFromAnyState(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	surfaces := map[Surface]*fakePresenter{
		SurfaceCartDrawer: newSurface(env, "a"),
		SurfaceCheckout:   newSurface(env, "b"),
		SurfaceGuide:      newSurface(env, "c"),
	}
	for s, p := range surfaces {
		c.Register(s, p)
	}

	c.Open(SurfaceCartDrawer)
	c.Open(SurfaceCheckout)
	c.Open(SurfaceGuide)

	c.CloseAll()

	assert.False(t, env.backdrop)
	for s, p := range surfaces {
		assert.False(t, p.visible, "surface %s should be hidden", s)
		assert.False(t, c.IsOpen(s))
	}
	_, ok := c.TrapOwner()
	assert.False(t, ok)

	// CloseAll on an already-clean coordinator stays a no-op.
	c.CloseAll()
	assert.False(t, env.backdrop)
}

func TestEscapeAndBackdropClickRouteToCloseAll(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	drawer := newSurface(env, "a")
	c.Register(SurfaceCartDrawer, drawer)

	c.Open(SurfaceCartDrawer)
	assert.True(t, c.HandleKey(KeyEvent{Key: KeyEscape}))
	assert.False(t, c.IsOpen(SurfaceCartDrawer))
	assert.False(t, env.backdrop)

	c.Open(SurfaceCartDrawer)
	c.BackdropClicked()
	assert.False(t, c.IsOpen(SurfaceCartDrawer))
	assert.False(t, env.backdrop)
}

func TestTabWrapPolicy(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	p := newSurface(env, "first", "middle", "last")
	c.Register(SurfaceCheckout, p)
	c.Open(SurfaceCheckout)

	first := p.handles[0].(*fakeHandle)
	middle := p.handles[1].(*fakeHandle)
	last := p.handles[2].(*fakeHandle)

	// Forward tab from the last handle wraps to the first.
	last.Focus()
	require.True(t, c.HandleKey(KeyEvent{Key: KeyTab}))
	assert.Equal(t, first, env.focused)

	// Backward tab from the first handle wraps to the last.
	first.Focus()
	require.True(t, c.HandleKey(KeyEvent{Key: KeyTab, Shift: true}))
	assert.Equal(t, last, env.focused)

	// Anywhere else the press is left to default handling.
	middle.Focus()
	assert.False(t, c.HandleKey(KeyEvent{Key: KeyTab}))
	assert.False(t, c.HandleKey(KeyEvent{Key: KeyTab, Shift: true}))
}

func TestTabWithoutTrapIsIgnored(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	assert.False(t, c.HandleKey(KeyEvent{Key: KeyTab}))
	assert.False(t, c.HandleKey(KeyEvent{Key: "Enter"}))
}

func TestTrapSkipsDisabledAndHiddenHandles(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())

	usable := newHandle(env, "usable")
	disabled := newHandle(env, "disabled")
	disabled.enabled = false
	hidden := newHandle(env, "hidden")
	hidden.visible = false

	p := &fakePresenter{env: env, handles: []Focusable{disabled, usable, hidden}}
	c.Register(SurfaceGuide, p)
	c.Open(SurfaceGuide)

	// Initial focus lands on the only usable handle.
	assert.Equal(t, usable, env.focused)

	// With a single focusable handle, both directions wrap onto itself.
	require.True(t, c.HandleKey(KeyEvent{Key: KeyTab}))
	assert.Equal(t, usable, env.focused)
	require.True(t, c.HandleKey(KeyEvent{Key: KeyTab, Shift: true}))
	assert.Equal(t, usable, env.focused)
}

// focusablePresenter is a surface that can receive focus itself.
type focusablePresenter struct {
	fakePresenter
	name string
}

func (p *focusablePresenter) Focus() {
	p.env.focused = p
	p.env.focusLog = append(p.env.focusLog, p.name)
}
func (p *focusablePresenter) Enabled() bool { return true }
func (p *focusablePresenter) Visible() bool { return p.visible }

func TestEmptySurfaceFocusesItselfAndSwallowsTab(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	p := &focusablePresenter{fakePresenter: fakePresenter{env: env}, name: "guide"}
	c.Register(SurfaceGuide, p)

	c.Open(SurfaceGuide)
	assert.Equal(t, []string{"guide"}, env.focusLog)

	// No focusable descendants: tab presses are swallowed entirely.
	assert.True(t, c.HandleKey(KeyEvent{Key: KeyTab}))
	assert.True(t, c.HandleKey(KeyEvent{Key: KeyTab, Shift: true}))
}

func TestCloseRestoresRememberedFocus(t *testing.T) {
	env := &fakeEnv{}
	c := NewCoordinator(env.deps())
	trigger := newHandle(env, "open-button")
	trigger.Focus() // focus sits on the page before the dialog opens

	p := newSurface(env, "inside")
	c.Register(SurfaceProductDetail, p)

	c.Open(SurfaceProductDetail)
	assert.Equal(t, "inside", env.focusLog[len(env.focusLog)-1])

	c.Close(SurfaceProductDetail)
	assert.Equal(t, trigger, env.focused, "focus returns to the pre-open element")
}
