package notation

import (
	"math"
	"math/rand"
	"time"
)

// LineRenderer is the built-in renderer: plain geometric strokes, one
// flattened polyline per shape. It deliberately does not attempt hand-drawn
// roughness — it exists so the engine is usable out of the box and as the
// reference implementation of the Renderer contract. Iterations beyond the
// first are jittered slightly from the annotation's seed, so re-rendering
// unchanged geometry reproduces the exact same strokes.
type LineRenderer struct {
	clock Clock

	// Jitter is the maximum per-point offset applied to iterations after
	// the first.
	Jitter float64
}

// NewLineRenderer creates a renderer timing its animations off the given
// host clock.
func NewLineRenderer(clock Clock) *LineRenderer {
	return &LineRenderer{clock: clock, Jitter: 1.5}
}

// Render produces the stroke paths for one rectangle and attaches them to
// the surface. The rectangle's animation budget is split across the produced
// paths in proportion to their stroke lengths, with cumulative delays so the
// strokes draw in sequence.
func (lr *LineRenderer) Render(s Surface, r Rect, cfg Config, delay, duration time.Duration, seed int64) []Path {
	rng := rand.New(rand.NewSource(seed))

	width := cfg.StrokeWidth
	if cfg.Kind == KindHighlight {
		width = r.Height * 0.95
	}

	shapes := lr.shapes(r, cfg)
	var polylines [][]Vec2
	for iter := 0; iter < cfg.Iterations; iter++ {
		for _, shape := range shapes {
			polylines = append(polylines, jitterShape(shape, rng, lr.jitterFor(iter)))
		}
	}

	var totalLength float64
	lengths := make([]float64, len(polylines))
	for i, pts := range polylines {
		lengths[i] = polylineLength(pts)
		totalLength += lengths[i]
	}

	paths := make([]Path, 0, len(polylines))
	pathDelay := delay
	for i, pts := range polylines {
		share := duration / time.Duration(len(polylines))
		if totalLength > 0 {
			share = time.Duration(float64(duration) * (lengths[i] / totalLength))
		}
		p := &StrokePath{
			surface:  s,
			clock:    lr.clock,
			points:   pts,
			length:   lengths[i],
			color:    cfg.Color,
			width:    width,
			animated: cfg.Animate,
			duration: share,
		}
		if cfg.Animate {
			p.start = lr.clock.Now() + pathDelay
		}
		s.AddPath(p)
		paths = append(paths, p)
		pathDelay += share
	}
	return paths
}

func (lr *LineRenderer) jitterFor(iteration int) float64 {
	if iteration == 0 {
		return 0
	}
	return lr.Jitter
}

// shapes returns the base polylines for the rectangle, before iteration
// jitter. Padding expands the rectangle outward; highlights ignore it and
// cut straight through the middle.
func (lr *LineRenderer) shapes(r Rect, cfg Config) [][]Vec2 {
	p := cfg.Padding
	x0, y0 := r.X-p.Left, r.Y-p.Top
	x1, y1 := r.X+r.Width+p.Right, r.Y+r.Height+p.Bottom

	switch cfg.Kind {
	case KindUnderline:
		return [][]Vec2{{{x0, y1}, {x1, y1}}}
	case KindStrikeThrough:
		mid := (y0 + y1) / 2
		return [][]Vec2{{{x0, mid}, {x1, mid}}}
	case KindHighlight:
		mid := r.Y + r.Height/2
		return [][]Vec2{{{r.X, mid}, {r.X + r.Width, mid}}}
	case KindBox:
		return [][]Vec2{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}}
	case KindCrossedOff:
		return [][]Vec2{
			{{x0, y0}, {x1, y1}},
			{{x1, y0}, {x0, y1}},
		}
	case KindCircle:
		return [][]Vec2{ellipse((x0+x1)/2, (y0+y1)/2, (x1-x0)/2, (y1-y0)/2)}
	case KindBracket:
		hook := math.Min(8, (x1-x0)/4)
		vhook := math.Min(8, (y1-y0)/4)
		var shapes [][]Vec2
		for _, side := range cfg.Brackets {
			switch side {
			case SideLeft:
				shapes = append(shapes, []Vec2{{x0 + hook, y0}, {x0, y0}, {x0, y1}, {x0 + hook, y1}})
			case SideRight:
				shapes = append(shapes, []Vec2{{x1 - hook, y0}, {x1, y0}, {x1, y1}, {x1 - hook, y1}})
			case SideTop:
				shapes = append(shapes, []Vec2{{x0, y0 + vhook}, {x0, y0}, {x1, y0}, {x1, y0 + vhook}})
			case SideBottom:
				shapes = append(shapes, []Vec2{{x0, y1 - vhook}, {x0, y1}, {x1, y1}, {x1, y1 - vhook}})
			}
		}
		return shapes
	default:
		return [][]Vec2{{{x0, y1}, {x1, y1}}}
	}
}

// ellipse samples a closed 32-segment polyline approximation.
func ellipse(cx, cy, rx, ry float64) []Vec2 {
	const segments = 32
	pts := make([]Vec2, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / segments * 2 * math.Pi
		pts[i] = Vec2{X: cx + rx*math.Cos(t), Y: cy + ry*math.Sin(t)}
	}
	return pts
}

func jitterShape(pts []Vec2, rng *rand.Rand, amount float64) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, pt := range pts {
		out[i] = Vec2{
			X: pt.X + (rng.Float64()*2-1)*amount,
			Y: pt.Y + (rng.Float64()*2-1)*amount,
		}
	}
	return out
}

func polylineLength(pts []Vec2) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return total
}

// --- StrokePath ---

// StrokePath is the Path implementation produced by LineRenderer: a flat
// polyline with a stroke style and reveal-animation timing. Hosts draw it by
// stroking the polyline up to Length() * Progress(now).
type StrokePath struct {
	surface Surface
	clock   Clock

	points []Vec2
	length float64
	offset Vec2
	color  Color
	width  float64

	animated bool
	start    time.Duration // clock time the entrance reveal begins
	duration time.Duration

	reversed    bool
	revStart    time.Duration
	revDuration time.Duration
}

// Length returns the total stroke length.
func (p *StrokePath) Length() float64 { return p.length }

// Points returns the polyline in overlay-local coordinates, before the
// translation offset. The returned slice MUST NOT be mutated by the caller.
func (p *StrokePath) Points() []Vec2 { return p.points }

// Offset returns the accumulated translation.
func (p *StrokePath) Offset() Vec2 { return p.offset }

// Color returns the stroke color.
func (p *StrokePath) Color() Color { return p.color }

// Width returns the stroke width.
func (p *StrokePath) Width() float64 { return p.width }

// Translate shifts the path, additive with prior translations.
func (p *StrokePath) Translate(dx, dy float64) {
	p.offset.X += dx
	p.offset.Y += dy
}

// CancelAnimation stops the entrance reveal, leaving the path fully drawn.
func (p *StrokePath) CancelAnimation() {
	p.animated = false
}

// ReverseDraw starts the draw-out animation: the path erases over duration,
// beginning after delay.
func (p *StrokePath) ReverseDraw(delay, duration time.Duration) {
	p.reversed = true
	p.revStart = p.clock.Now() + delay
	p.revDuration = duration
}

// Remove detaches the path from its surface. Safe to call repeatedly and
// after the surface itself is gone.
func (p *StrokePath) Remove() {
	if p.surface == nil {
		return
	}
	p.surface.RemovePath(p)
	p.surface = nil
}

// Progress returns the visible fraction of the stroke at the given clock
// time: 0 is nothing, 1 is fully drawn. Entrances follow the draw-in curve,
// reversals the draw-out curve.
func (p *StrokePath) Progress(now time.Duration) float64 {
	if p.reversed {
		return 1 - curveAt(Curves().DrawOut, now-p.revStart, p.revDuration)
	}
	if !p.animated {
		return 1
	}
	return curveAt(Curves().DrawIn, now-p.start, p.duration)
}

// curveAt evaluates an easing curve at the given elapsed time, clamped to
// [0, 1].
func curveAt(fn func(t, b, c, d float32) float32, elapsed, duration time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= duration || duration <= 0 {
		return 1
	}
	v := float64(fn(float32(elapsed.Seconds()), 0, 1, float32(duration.Seconds())))
	return math.Max(0, math.Min(1, v))
}
