package notation

import (
	"sort"
	"time"
)

// ManualHost is a deterministic Host implementation driven entirely by
// explicit calls: RunFrame stands in for the display-refresh tick, RunTasks
// drains the microtask queue, Advance moves the host clock and fires due
// timers, and NotifyResize / ResizeViewport simulate layout events. It backs
// the package's own tests and suits any headless or scripted use.
//
// ManualHost implements the per-element resize observation capability; wrap
// it in a plain Host value to exercise the viewport-only fallback.
type ManualHost struct {
	clock time.Duration

	tasks  []func()
	frames []func()
	timers []hostTimer

	nextID      int
	viewportFns map[int]func()
	observers   map[int]manualObserver

	surfaces []*ManualSurface
}

type hostTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

type manualObserver struct {
	element Element
	fn      func()
}

// NewManualHost creates a manual host with its clock at zero.
func NewManualHost() *ManualHost {
	return &ManualHost{
		viewportFns: make(map[int]func()),
		observers:   make(map[int]manualObserver),
	}
}

// CreateSurface returns a new, unattached ManualSurface.
func (h *ManualHost) CreateSurface() Surface {
	s := &ManualSurface{}
	h.surfaces = append(h.surfaces, s)
	return s
}

// RequestFrame queues fn for the next RunFrame call. Callbacks requested
// while a frame is running land on the following frame.
func (h *ManualHost) RequestFrame(fn func()) {
	h.frames = append(h.frames, fn)
}

// QueueTask queues fn for the next RunTasks (or RunFrame) call.
func (h *ManualHost) QueueTask(fn func()) {
	h.tasks = append(h.tasks, fn)
}

// After schedules fn to fire once Advance has moved the clock past d from
// now.
func (h *ManualHost) After(d time.Duration, fn func()) {
	h.nextID++
	h.timers = append(h.timers, hostTimer{at: h.clock + d, seq: h.nextID, fn: fn})
}

// OnViewportResize registers fn for ResizeViewport calls.
func (h *ManualHost) OnViewportResize(fn func()) func() {
	h.nextID++
	id := h.nextID
	h.viewportFns[id] = fn
	return func() { delete(h.viewportFns, id) }
}

// ObserveResize registers fn for NotifyResize calls on e.
func (h *ManualHost) ObserveResize(e Element, fn func()) func() {
	h.nextID++
	id := h.nextID
	h.observers[id] = manualObserver{element: e, fn: fn}
	return func() { delete(h.observers, id) }
}

// Now returns the host clock.
func (h *ManualHost) Now() time.Duration {
	return h.clock
}

// RunTasks drains the microtask queue, including tasks queued by the tasks
// being run.
func (h *ManualHost) RunTasks() {
	for len(h.tasks) > 0 {
		tasks := h.tasks
		h.tasks = nil
		for _, fn := range tasks {
			fn()
		}
	}
}

// RunFrame simulates one display-refresh tick: pending microtasks run first,
// then every frame callback queued before the tick, then microtasks queued
// by those callbacks.
func (h *ManualHost) RunFrame() {
	h.RunTasks()
	frames := h.frames
	h.frames = nil
	for _, fn := range frames {
		fn()
	}
	h.RunTasks()
}

// Advance moves the host clock forward by d and fires every timer that comes
// due, in scheduling order.
func (h *ManualHost) Advance(d time.Duration) {
	h.clock += d
	var due []hostTimer
	rest := h.timers[:0]
	for _, t := range h.timers {
		if t.at <= h.clock {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	h.timers = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fn()
	}
}

// NotifyResize fires the resize observers registered for e.
func (h *ManualHost) NotifyResize(e Element) {
	for _, o := range h.observers {
		if o.element == e {
			o.fn()
		}
	}
}

// ResizeViewport fires every registered viewport-resize handler.
func (h *ManualHost) ResizeViewport() {
	for _, fn := range h.viewportFns {
		fn()
	}
}

// Surfaces returns every surface the host has created, attached or not.
// The returned slice MUST NOT be mutated by the caller.
func (h *ManualHost) Surfaces() []*ManualSurface {
	return h.surfaces
}

// --- ManualElement ---

// SurfaceInsertion records one InsertAdjacent call on a ManualElement.
type SurfaceInsertion struct {
	Surface Surface
	Before  bool
}

// ManualElement is a scriptable annotation target: tests and headless
// programs set its bounds and attachment directly.
type ManualElement struct {
	attached   bool
	positioned bool
	bounds     Rect
	lines      []Rect
	insertions []SurfaceInsertion
}

// NewManualElement creates an attached element with the given bounds.
func NewManualElement(bounds Rect) *ManualElement {
	return &ManualElement{attached: true, bounds: bounds}
}

// Attached reports whether the element has a parent in the visual tree.
func (e *ManualElement) Attached() bool { return e.attached }

// Detach removes the element from the visual tree.
func (e *ManualElement) Detach() { e.attached = false }

// Attach puts the element back into the visual tree.
func (e *ManualElement) Attach() { e.attached = true }

// Bounds returns the element's bounding box.
func (e *ManualElement) Bounds() Rect { return e.bounds }

// SetBounds moves or resizes the element. It does not notify observers;
// call ManualHost.NotifyResize to simulate the platform event.
func (e *ManualElement) SetBounds(r Rect) { e.bounds = r }

// LineBounds returns the per-line boxes set via SetLineBounds, or the
// overall bounds as a single box.
func (e *ManualElement) LineBounds() []Rect {
	if e.lines != nil {
		return e.lines
	}
	return []Rect{e.bounds}
}

// SetLineBounds sets the per-line fragment boxes.
func (e *ManualElement) SetLineBounds(lines []Rect) { e.lines = lines }

// EnsurePositionContext records that the element was made a positioning
// context.
func (e *ManualElement) EnsurePositionContext() { e.positioned = true }

// Positioned reports whether EnsurePositionContext has been called.
func (e *ManualElement) Positioned() bool { return e.positioned }

// InsertAdjacent records the surface attachment.
func (e *ManualElement) InsertAdjacent(s Surface, before bool) {
	e.insertions = append(e.insertions, SurfaceInsertion{Surface: s, Before: before})
}

// Insertions returns every recorded InsertAdjacent call, oldest first.
func (e *ManualElement) Insertions() []SurfaceInsertion { return e.insertions }

// --- ManualSurface ---

// ManualSurface is an overlay surface that records its paths instead of
// drawing them.
type ManualSurface struct {
	bounds  Rect
	paths   []Path
	removed bool
}

// Bounds returns the surface's bounding box. Its origin defaults to (0, 0),
// making overlay-local and page coordinates coincide.
func (s *ManualSurface) Bounds() Rect { return s.bounds }

// SetBounds moves the surface, shifting the local coordinate frame.
func (s *ManualSurface) SetBounds(r Rect) { s.bounds = r }

// AddPath attaches p to the surface.
func (s *ManualSurface) AddPath(p Path) {
	s.paths = append(s.paths, p)
}

// RemovePath detaches p. No-op if p is not attached.
func (s *ManualSurface) RemovePath(p Path) {
	for i, q := range s.paths {
		if q == p {
			s.paths = append(s.paths[:i], s.paths[i+1:]...)
			return
		}
	}
}

// Remove detaches the surface from the visual tree.
func (s *ManualSurface) Remove() { s.removed = true }

// Removed reports whether Remove has been called.
func (s *ManualSurface) Removed() bool { return s.removed }

// Paths returns the currently attached paths. The returned slice MUST NOT be
// mutated by the caller.
func (s *ManualSurface) Paths() []Path { return s.paths }
