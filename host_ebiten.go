package notation

import (
	"image/color"
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenHost runs annotations inside an Ebitengine game loop. Call Update
// once per game tick and DrawBelow / DrawAbove around your own rendering so
// highlight overlays paint beneath the content they mark:
//
//	func (g *Game) Update() error {
//		g.host.Update()
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.host.DrawBelow(screen)
//		// ... draw your content ...
//		g.host.DrawAbove(screen)
//	}
//
// The host clock advances by one tick interval per Update. Frame callbacks,
// microtasks, and timers all fire from Update, on the game goroutine —
// exactly the single dispatch context the engine requires. Per-element
// resize observation is implemented by polling watched element bounds once
// per tick.
type EbitenHost struct {
	clock time.Duration

	tasks  []func()
	frames []func()
	timers []hostTimer

	nextID      int
	viewportFns map[int]func()
	watched     map[int]*watchedElement

	surfaces []*EbitenSurface

	lastVW, lastVH int
}

type watchedElement struct {
	element Element
	fn      func()
	lastW   int
	lastH   int
}

// NewEbitenHost creates a host with its clock at zero.
func NewEbitenHost() *EbitenHost {
	return &EbitenHost{
		viewportFns: make(map[int]func()),
		watched:     make(map[int]*watchedElement),
	}
}

// NewElement creates an attached annotation target with the given screen
// bounds. Move or resize it with SetBounds; the host notices size changes on
// the next Update.
func (h *EbitenHost) NewElement(bounds Rect) *EbitenElement {
	return &EbitenElement{attached: true, bounds: bounds}
}

// CreateSurface returns a new overlay surface drawing into the host.
func (h *EbitenHost) CreateSurface() Surface {
	s := &EbitenSurface{host: h}
	h.surfaces = append(h.surfaces, s)
	return s
}

// RequestFrame queues fn for the next Update. Callbacks requested during an
// Update land on the following one.
func (h *EbitenHost) RequestFrame(fn func()) {
	h.frames = append(h.frames, fn)
}

// QueueTask queues fn to run within the current (or next) Update, before
// frame callbacks.
func (h *EbitenHost) QueueTask(fn func()) {
	h.tasks = append(h.tasks, fn)
}

// After schedules fn to fire once the host clock has advanced by d.
func (h *EbitenHost) After(d time.Duration, fn func()) {
	h.nextID++
	h.timers = append(h.timers, hostTimer{at: h.clock + d, seq: h.nextID, fn: fn})
}

// OnViewportResize registers fn to fire when the window size changes.
func (h *EbitenHost) OnViewportResize(fn func()) func() {
	h.nextID++
	id := h.nextID
	h.viewportFns[id] = fn
	return func() { delete(h.viewportFns, id) }
}

// ObserveResize watches e's bounds and fires fn when its rounded size
// changes. Position-only moves do not fire; the viewport handlers cover
// whole-layout shifts.
func (h *EbitenHost) ObserveResize(e Element, fn func()) func() {
	b := e.Bounds()
	h.nextID++
	id := h.nextID
	h.watched[id] = &watchedElement{
		element: e,
		fn:      fn,
		lastW:   roundCoord(b.Width),
		lastH:   roundCoord(b.Height),
	}
	return func() { delete(h.watched, id) }
}

// Now returns the host clock.
func (h *EbitenHost) Now() time.Duration {
	return h.clock
}

// Update advances the host by one tick: it detects window and element
// resizes, drains microtasks, runs frame callbacks, and fires due timers.
// Call it once per ebiten Update.
func (h *EbitenHost) Update() {
	h.clock += time.Second / time.Duration(ebiten.TPS())

	vw, vh := ebiten.WindowSize()
	if vw != h.lastVW || vh != h.lastVH {
		first := h.lastVW == 0 && h.lastVH == 0
		h.lastVW, h.lastVH = vw, vh
		if !first {
			for _, fn := range h.viewportFns {
				fn()
			}
		}
	}

	for _, we := range h.watched {
		b := we.element.Bounds()
		w, ht := roundCoord(b.Width), roundCoord(b.Height)
		if w != we.lastW || ht != we.lastH {
			we.lastW, we.lastH = w, ht
			we.fn()
		}
	}

	h.runTasks()
	frames := h.frames
	h.frames = nil
	for _, fn := range frames {
		fn()
	}
	h.runTasks()

	h.fireTimers()
	h.pruneSurfaces()
}

func (h *EbitenHost) runTasks() {
	for len(h.tasks) > 0 {
		tasks := h.tasks
		h.tasks = nil
		for _, fn := range tasks {
			fn()
		}
	}
}

func (h *EbitenHost) fireTimers() {
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

func (h *EbitenHost) pruneSurfaces() {
	kept := h.surfaces[:0]
	for _, s := range h.surfaces {
		if !s.removed {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(h.surfaces); i++ {
		h.surfaces[i] = nil
	}
	h.surfaces = kept
}

// DrawBelow strokes the overlays that paint beneath their targets
// (highlights). Call before drawing your own content.
func (h *EbitenHost) DrawBelow(screen *ebiten.Image) {
	h.draw(screen, true)
}

// DrawAbove strokes every other overlay. Call after drawing your own content.
func (h *EbitenHost) DrawAbove(screen *ebiten.Image) {
	h.draw(screen, false)
}

func (h *EbitenHost) draw(screen *ebiten.Image, below bool) {
	for _, s := range h.surfaces {
		if s.removed || s.below != below {
			continue
		}
		origin := s.bounds
		for _, p := range s.paths {
			sp, ok := p.(*StrokePath)
			if !ok {
				continue
			}
			strokePartial(screen, sp, origin, h.clock)
		}
	}
}

// strokePartial draws the polyline up to its currently revealed length.
func strokePartial(dst *ebiten.Image, sp *StrokePath, origin Rect, now time.Duration) {
	progress := sp.Progress(now)
	if progress <= 0 {
		return
	}
	limit := sp.Length() * progress
	pts := sp.Points()
	off := sp.Offset()
	clr := toNRGBA(sp.Color())
	width := float32(sp.Width())

	var drawn float64
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		if segLen == 0 {
			continue
		}
		if drawn+segLen > limit {
			t := (limit - drawn) / segLen
			b = Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		}
		vector.StrokeLine(dst,
			float32(a.X+off.X+origin.X), float32(a.Y+off.Y+origin.Y),
			float32(b.X+off.X+origin.X), float32(b.Y+off.Y+origin.Y),
			width, clr, true)
		drawn += segLen
		if drawn >= limit {
			return
		}
	}
}

func toNRGBA(c Color) color.NRGBA {
	to255 := func(v float64) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: to255(c.R), G: to255(c.G), B: to255(c.B), A: to255(c.A)}
}

// --- EbitenElement ---

// EbitenElement is an annotation target living in screen coordinates.
type EbitenElement struct {
	attached   bool
	positioned bool
	bounds     Rect
	lines      []Rect
}

// Attached reports whether the element is in the visual tree.
func (e *EbitenElement) Attached() bool { return e.attached }

// Detach removes the element from the visual tree.
func (e *EbitenElement) Detach() { e.attached = false }

// Bounds returns the element's screen bounds.
func (e *EbitenElement) Bounds() Rect { return e.bounds }

// SetBounds moves or resizes the element. Size changes are picked up by the
// host's resize polling on the next Update; position changes surface through
// viewport or explicit dirty marks.
func (e *EbitenElement) SetBounds(r Rect) { e.bounds = r }

// LineBounds returns the per-line boxes set via SetLineBounds, or the
// overall bounds as a single box.
func (e *EbitenElement) LineBounds() []Rect {
	if e.lines != nil {
		return e.lines
	}
	return []Rect{e.bounds}
}

// SetLineBounds sets the per-line fragment boxes.
func (e *EbitenElement) SetLineBounds(lines []Rect) { e.lines = lines }

// EnsurePositionContext is a no-op: screen coordinates are already absolute.
func (e *EbitenElement) EnsurePositionContext() {}

// InsertAdjacent attaches the overlay. A before insertion paints beneath the
// target via DrawBelow.
func (e *EbitenElement) InsertAdjacent(s Surface, before bool) {
	if es, ok := s.(*EbitenSurface); ok {
		es.below = before
	}
}

// --- EbitenSurface ---

// EbitenSurface is an overlay surface stroked by the host's draw passes.
// Its origin is the screen origin, so overlay-local and screen coordinates
// coincide.
type EbitenSurface struct {
	host    *EbitenHost
	bounds  Rect
	paths   []Path
	below   bool
	removed bool
}

// Bounds returns the surface's bounding box.
func (s *EbitenSurface) Bounds() Rect { return s.bounds }

// AddPath attaches p to the surface.
func (s *EbitenSurface) AddPath(p Path) {
	s.paths = append(s.paths, p)
}

// RemovePath detaches p. No-op if p is not attached.
func (s *EbitenSurface) RemovePath(p Path) {
	for i, q := range s.paths {
		if q == p {
			s.paths = append(s.paths[:i], s.paths[i+1:]...)
			return
		}
	}
}

// Remove detaches the surface; the host drops it on the next Update.
func (s *EbitenSurface) Remove() {
	s.removed = true
	s.paths = nil
}

// Paths returns the currently attached paths. The returned slice MUST NOT be
// mutated by the caller.
func (s *EbitenSurface) Paths() []Path { return s.paths }
