package notation

import (
	"math/rand"
	"time"
)

// State is an annotation's lifecycle state.
type State uint8

const (
	// StateUnattached means the target has no parent in the visual tree, or
	// Remove has been called.
	StateUnattached State = iota
	// StateNotShowing means the overlay surface exists but draws nothing.
	StateNotShowing
	// StateShowing means the overlay surface holds rendered paths.
	StateShowing
)

// Annotation overlays one hand-drawn-style marking on one target element.
// It owns its overlay surface and drawn paths, holds only a borrowed
// reference to the target, and keeps the marking attached as the target
// moves, resizes, or reflows.
//
// Create annotations with New. The caller owns removal: an annotation's
// resources are released only by an explicit Remove call.
type Annotation struct {
	host     Host
	renderer Renderer
	target   Element
	sched    *scheduler

	cfg     Config
	surface Surface
	paths   []Path
	state   State

	// lastRects is the last-measured geometry, one rectangle per visual
	// line when multiline, else one. nil until the first render.
	lastRects []Rect

	// seed is stable for the annotation's lifetime so repeated re-renders
	// of unchanged geometry look identical.
	seed int64

	// startDelay offsets the entrance animation; set by a Group to sequence
	// multiple annotations.
	startDelay time.Duration

	refreshPending bool
	removed        bool

	cancelObserve  func()
	cancelViewport func()
}

// New creates an annotation bound to a target element and immediately
// attempts to attach it. If the target has a parent the annotation starts in
// StateNotShowing, otherwise StateUnattached; a later Show retries the
// attach. Panics if host, renderer, or target is nil.
func New(host Host, renderer Renderer, target Element, cfg Config) *Annotation {
	if host == nil {
		panic("notation: nil host")
	}
	if renderer == nil {
		panic("notation: nil renderer")
	}
	if target == nil {
		panic("notation: nil target")
	}
	ensureKeyframes(host)
	a := &Annotation{
		host:     host,
		renderer: renderer,
		target:   target,
		sched:    schedulerFor(host),
		cfg:      cfg.normalized(),
		seed:     rand.Int63(),
	}
	a.attach()
	return a
}

// attach creates and positions the overlay surface and installs resize
// listeners. No-op while already attached, after removal, or while the target
// has no parent.
func (a *Annotation) attach() {
	if a.state != StateUnattached || a.removed {
		return
	}
	if !a.target.Attached() {
		return
	}
	a.surface = a.host.CreateSurface()
	a.target.EnsurePositionContext()
	// Highlights go before the target so they paint beneath it.
	a.target.InsertAdjacent(a.surface, a.cfg.Kind == KindHighlight)

	mark := func() { a.sched.mark(a) }
	a.cancelObserve = a.sched.watcher.watch(a.target, mark)
	a.cancelViewport = a.host.OnViewportResize(mark)

	a.state = StateNotShowing
}

// Show renders the annotation. On a not-showing annotation this measures the
// target and renders with animation permitted. On an already-showing
// annotation it force-hides without animation and immediately re-renders,
// which rebuilds the marking after a configuration change. On an unattached
// annotation it retries the attach first; if the target still has no parent,
// or Remove has been called, Show is a no-op.
func (a *Annotation) Show() {
	if a.removed {
		return
	}
	if a.state == StateShowing {
		// No stale animation may remain mid-flight when rebuilding.
		a.Hide(true)
	}
	a.attach()
	if a.state == StateUnattached {
		return
	}
	rects := a.measureRects()
	a.render(rects, true)
	a.lastRects = rects
	a.state = StateShowing
}

// Hide clears the annotation's paths. When the configuration requests an
// animated hide and force is false, the paths erase with a reverse-draw
// animation and are physically removed once it completes; the state still
// becomes StateNotShowing synchronously. No-op unless showing.
func (a *Annotation) Hide(force bool) {
	if a.state != StateShowing {
		return
	}
	paths := a.paths
	a.paths = nil
	if a.cfg.AnimateOnHide && !force {
		a.drawOut(paths)
	} else {
		for _, p := range paths {
			p.Remove()
		}
	}
	a.state = StateNotShowing
}

// Remove detaches and discards the overlay surface and listeners. Removal is
// terminal: a removed annotation stays StateUnattached forever and every
// later Show is a no-op. Create a new annotation to re-attach.
func (a *Annotation) Remove() {
	if a.removed {
		return
	}
	if a.cancelObserve != nil {
		a.cancelObserve()
		a.cancelObserve = nil
	}
	if a.cancelViewport != nil {
		a.cancelViewport()
		a.cancelViewport = nil
	}
	if a.surface != nil {
		a.surface.Remove()
		a.surface = nil
	}
	a.paths = nil
	a.lastRects = nil
	a.state = StateUnattached
	a.removed = true
}

// Invalidate marks the annotation for re-measurement on the next
// display-refresh tick. Resize events do this automatically; callers that
// move or reflow targets programmatically use Invalidate to keep the marking
// attached. Marks are coalesced: any number of calls before the next tick
// produce one measurement.
func (a *Annotation) Invalidate() {
	if a.removed {
		return
	}
	a.sched.mark(a)
}

// IsShowing reports whether the annotation currently holds rendered paths.
func (a *Annotation) IsShowing() bool {
	return a.state == StateShowing
}

// State returns the annotation's lifecycle state.
func (a *Annotation) State() State {
	return a.state
}

// Config returns a snapshot of the annotation's current configuration.
// The Brackets slice is cloned; mutating it has no effect.
func (a *Annotation) Config() Config {
	cfg := a.cfg
	cfg.Brackets = append([]Side(nil), cfg.Brackets...)
	return cfg
}

// SetStartDelay sets the entrance animation start offset. Groups use this to
// sequence their members; it takes effect on the next Show.
func (a *Annotation) SetStartDelay(d time.Duration) {
	a.startDelay = d
}

// StartDelay returns the entrance animation start offset.
func (a *Annotation) StartDelay() time.Duration {
	return a.startDelay
}

// --- Mutable properties ---
//
// Animation-related fields take effect on the next explicit Show. Visual
// fields (color, stroke width, padding) additionally schedule a deferred
// re-render when the annotation is showing: any number of mutations within
// one dispatch collapse into a single rebuild.

// SetAnimate sets whether the next Show animates the entrance.
func (a *Annotation) SetAnimate(v bool) { a.cfg.Animate = v }

// Animate reports whether the entrance animates.
func (a *Annotation) Animate() bool { return a.cfg.Animate }

// SetAnimationDuration sets the total entrance (and animated hide) duration.
func (a *Annotation) SetAnimationDuration(d time.Duration) {
	if d == 0 {
		d = DefaultDuration
	}
	a.cfg.AnimationDuration = d
}

// AnimationDuration returns the total animation duration.
func (a *Annotation) AnimationDuration() time.Duration { return a.cfg.AnimationDuration }

// SetAnimateOnHide sets whether Hide plays the reverse-draw animation.
func (a *Annotation) SetAnimateOnHide(v bool) { a.cfg.AnimateOnHide = v }

// AnimateOnHide reports whether Hide animates.
func (a *Annotation) AnimateOnHide() bool { return a.cfg.AnimateOnHide }

// SetIterations sets how many strokes the renderer draws per shape.
// Takes effect on the next Show.
func (a *Annotation) SetIterations(n int) {
	if n <= 0 {
		n = DefaultIterations
	}
	a.cfg.Iterations = n
}

// Iterations returns the stroke iteration count.
func (a *Annotation) Iterations() int { return a.cfg.Iterations }

// SetColor sets the stroke color.
func (a *Annotation) SetColor(c Color) {
	if c == a.cfg.Color {
		return
	}
	a.cfg.Color = c
	a.scheduleRefresh()
}

// Color returns the stroke color.
func (a *Annotation) Color() Color { return a.cfg.Color }

// SetStrokeWidth sets the stroke width.
func (a *Annotation) SetStrokeWidth(w float64) {
	if w <= 0 {
		w = DefaultStrokeWidth
	}
	if w == a.cfg.StrokeWidth {
		return
	}
	a.cfg.StrokeWidth = w
	a.scheduleRefresh()
}

// StrokeWidth returns the stroke width.
func (a *Annotation) StrokeWidth() float64 { return a.cfg.StrokeWidth }

// SetPadding sets the space between the target and the marking.
func (a *Annotation) SetPadding(p Padding) {
	if p == a.cfg.Padding {
		return
	}
	a.cfg.Padding = p
	a.scheduleRefresh()
}

// Padding returns the padding.
func (a *Annotation) Padding() Padding { return a.cfg.Padding }

// scheduleRefresh queues a microtask-deferred Show so N mutations in the same
// dispatch produce exactly one re-render. Only one refresh may be pending at
// a time, and only a showing annotation rebuilds.
func (a *Annotation) scheduleRefresh() {
	if a.state != StateShowing || a.refreshPending {
		return
	}
	a.refreshPending = true
	a.host.QueueTask(func() {
		a.refreshPending = false
		if a.removed || a.state != StateShowing {
			return
		}
		a.Show()
	})
}
