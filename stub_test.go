package notation

import "time"

// renderCall records one Renderer.Render invocation.
type renderCall struct {
	surface  Surface
	rect     Rect
	cfg      Config
	delay    time.Duration
	duration time.Duration
	seed     int64
}

// stubRenderer records its calls and produces stubPaths.
type stubRenderer struct {
	calls        []renderCall
	pathsPerRect int       // 0 means 1
	lengths      []float64 // cycled per produced path; empty means 100 each
	produced     int
	onRender     func()
}

func (r *stubRenderer) Render(s Surface, rect Rect, cfg Config, delay, duration time.Duration, seed int64) []Path {
	r.calls = append(r.calls, renderCall{
		surface: s, rect: rect, cfg: cfg, delay: delay, duration: duration, seed: seed,
	})
	if r.onRender != nil {
		r.onRender()
	}
	n := r.pathsPerRect
	if n == 0 {
		n = 1
	}
	paths := make([]Path, n)
	for i := 0; i < n; i++ {
		length := 100.0
		if len(r.lengths) > 0 {
			length = r.lengths[r.produced%len(r.lengths)]
		}
		r.produced++
		p := &stubPath{surface: s, length: length}
		s.AddPath(p)
		paths[i] = p
	}
	return paths
}

type reverseCall struct {
	delay    time.Duration
	duration time.Duration
}

// stubPath records path mutations.
type stubPath struct {
	surface  Surface
	length   float64
	offset   Vec2
	cancels  int
	reverses []reverseCall
	removes  int
}

func (p *stubPath) Length() float64 { return p.length }

func (p *stubPath) Translate(dx, dy float64) {
	p.offset.X += dx
	p.offset.Y += dy
}

func (p *stubPath) CancelAnimation() { p.cancels++ }

func (p *stubPath) ReverseDraw(delay, duration time.Duration) {
	p.reverses = append(p.reverses, reverseCall{delay: delay, duration: duration})
}

func (p *stubPath) Remove() {
	p.removes++
	if p.surface != nil {
		p.surface.RemovePath(p)
		p.surface = nil
	}
}

// countingElement wraps a ManualElement and counts geometry queries.
type countingElement struct {
	*ManualElement
	boundsCalls int
	lineCalls   int
}

func (e *countingElement) Bounds() Rect {
	e.boundsCalls++
	return e.ManualElement.Bounds()
}

func (e *countingElement) LineBounds() []Rect {
	e.lineCalls++
	return e.ManualElement.LineBounds()
}

// bareHost hides a ManualHost's optional capabilities behind the plain Host
// interface, exercising the viewport-only resize fallback.
type bareHost struct {
	Host
}

// firstSurface returns the overlay surface attached by the annotation under
// test.
func firstSurface(e *ManualElement) *ManualSurface {
	ins := e.Insertions()
	if len(ins) == 0 {
		return nil
	}
	return ins[len(ins)-1].Surface.(*ManualSurface)
}
