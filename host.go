package notation

import "time"

// Element is the target an annotation decorates. The annotation borrows the
// element; it never owns it and must tolerate the element being detached from
// the visual tree at any time.
type Element interface {
	// Attached reports whether the element currently has a parent in the
	// visual tree.
	Attached() bool

	// Bounds returns the element's overall bounding box in page coordinates.
	Bounds() Rect

	// LineBounds returns one bounding box per visual line fragment, in page
	// coordinates. Elements that do not reflow may return a single box.
	LineBounds() []Rect

	// EnsurePositionContext makes the element a positioning context so an
	// adjacent overlay's absolute coordinates align with it. No-op if the
	// element already is one.
	EnsurePositionContext()

	// InsertAdjacent attaches the overlay surface next to the element:
	// before it when before is true (painted beneath), after it otherwise.
	InsertAdjacent(s Surface, before bool)
}

// Surface is the drawable region created alongside a target element, into
// which decorative paths are drawn. It is owned by exactly one annotation.
type Surface interface {
	// Bounds returns the surface's own bounding box in page coordinates.
	// Its origin defines the local frame all annotation geometry uses.
	Bounds() Rect

	// AddPath attaches a drawn path to the surface.
	AddPath(p Path)

	// RemovePath detaches a drawn path. Removing a path that is not present
	// is a no-op.
	RemovePath(p Path)

	// Remove detaches the surface itself from the visual tree. The surface
	// must not be used afterwards.
	Remove()
}

// Path is one drawable stroke produced by a Renderer. All mutators must be
// safe to call after the path or its surface has been removed; teardown
// ordering against deferred animation work is not guaranteed.
type Path interface {
	// Length returns the total stroke length.
	Length() float64

	// Translate shifts the path by (dx, dy), additive with any prior
	// translation.
	Translate(dx, dy float64)

	// CancelAnimation stops a running entrance animation, leaving the path
	// fully drawn.
	CancelAnimation()

	// ReverseDraw plays the draw-out animation: the path erases over the
	// given duration, starting after the given delay.
	ReverseDraw(delay, duration time.Duration)

	// Remove detaches the path from its surface.
	Remove()
}

// Renderer produces drawn paths for one rectangle of an annotation. It is an
// external collaborator: the engine decides when and with what geometry to
// render, the renderer decides what the strokes look like.
//
// The delay and duration cover this rectangle's share of the annotation's
// entrance animation. The seed is stable per annotation so repeated renders
// of unchanged geometry look identical.
type Renderer interface {
	Render(s Surface, r Rect, cfg Config, delay, duration time.Duration, seed int64) []Path
}

// Host provides the platform primitives the engine runs on. All engine entry
// points must be called from the host's single dispatch context; the engine
// does no locking of its own.
type Host interface {
	// CreateSurface creates a new, not yet attached overlay surface.
	CreateSurface() Surface

	// RequestFrame schedules fn to run once on the next display-refresh
	// tick. Callbacks requested while a tick is running land on the tick
	// after it.
	RequestFrame(fn func())

	// QueueTask schedules fn to run before the next display-refresh tick,
	// after the currently executing callback returns (a microtask).
	QueueTask(fn func())

	// After schedules fn to run once the given duration has elapsed on the
	// host clock.
	After(d time.Duration, fn func())

	// OnViewportResize registers fn to run whenever the viewport resizes.
	// The returned cancel function unregisters it.
	OnViewportResize(fn func()) (cancel func())
}

// ElementObserver is an optional Host capability for per-element resize
// notification. Hosts that do not implement it fall back to viewport resize
// events only: size-only changes of a single element go undetected until the
// next viewport-driven remeasurement.
type ElementObserver interface {
	// ObserveResize registers fn to run whenever e changes size. The
	// returned cancel function unregisters it.
	ObserveResize(e Element, fn func()) (cancel func())
}

// Clock is implemented by hosts that expose their animation clock. Renderers
// use it to timestamp entrance animations.
type Clock interface {
	Now() time.Duration
}
