// Package overlay coordinates the storefront's modal-like surfaces: the cart
// drawer, the product detail dialog, the checkout dialog and the guide. All
// surfaces share one backdrop and one keyboard focus trap. The package holds
// the policy only; actual key-event subscription and rendering stay with the
// presentation layer, which feeds events in through the coordinator.
package overlay

// Surface identifies one overlay panel managed by the coordinator.
type Surface string

const (
	// SurfaceCartDrawer is the sliding cart panel.
	SurfaceCartDrawer Surface = "cartDrawer"
	// SurfaceProductDetail is the product gallery dialog.
	SurfaceProductDetail Surface = "productDetail"
	// SurfaceCheckout is the checkout form dialog.
	SurfaceCheckout Surface = "checkout"
	// SurfaceGuide is the care guide dialog.
	SurfaceGuide Surface = "guide"
)

// Surfaces lists every managed surface in close order.
func Surfaces() []Surface {
	return []Surface{SurfaceCartDrawer, SurfaceProductDetail, SurfaceCheckout, SurfaceGuide}
}

// Focusable is one interactive handle inside a surface, supplied by the
// presentation layer in document order.
type Focusable interface {
	Focus()
	Enabled() bool
	Visible() bool
}

// Presenter is the presentation node backing one surface. A surface without a
// registered presenter tolerates every operation as a silent no-op, so the
// coordinator survives a partially-initialised page.
type Presenter interface {
	SetVisible(visible bool)
	// Focusables returns the surface's interactive descendants in document
	// order, including disabled or hidden ones; the trap filters them.
	Focusables() []Focusable
}

// Key names routed through HandleKey.
const (
	KeyTab    = "Tab"
	KeyEscape = "Escape"
)

// KeyEvent is a keyboard event fed in by the presentation layer.
type KeyEvent struct {
	Key   string
	Shift bool
}
