package notation

import (
	"testing"
	"time"
)

func renderKind(t *testing.T, kind Kind, mutate func(*Config)) (*ManualSurface, []Path) {
	t.Helper()
	host := NewManualHost()
	lr := NewLineRenderer(host)
	s := host.CreateSurface().(*ManualSurface)
	cfg := DefaultConfig(kind)
	if mutate != nil {
		mutate(&cfg)
	}
	paths := lr.Render(s, Rect{X: 10, Y: 20, Width: 200, Height: 40}, cfg, 0, 400*time.Millisecond, 7)
	return s, paths
}

func TestLineRendererPathCounts(t *testing.T) {
	// One polyline per base shape per iteration.
	cases := []struct {
		kind   Kind
		mutate func(*Config)
		shapes int
	}{
		{KindUnderline, nil, 1},
		{KindStrikeThrough, nil, 1},
		{KindHighlight, nil, 1},
		{KindBox, nil, 1},
		{KindCircle, nil, 1},
		{KindCrossedOff, nil, 2},
		{KindBracket, func(c *Config) { c.Brackets = []Side{SideRight} }, 1},
		{KindBracket, func(c *Config) { c.Brackets = []Side{SideLeft, SideRight, SideTop} }, 3},
	}
	for _, tc := range cases {
		_, paths := renderKind(t, tc.kind, tc.mutate)
		want := tc.shapes * DefaultIterations
		if len(paths) != want {
			t.Errorf("%v: paths = %d, want %d", tc.kind, len(paths), want)
		}
	}
}

func TestLineRendererAttachesPaths(t *testing.T) {
	s, paths := renderKind(t, KindBox, nil)
	if len(s.Paths()) != len(paths) {
		t.Errorf("surface paths = %d, want %d", len(s.Paths()), len(paths))
	}
	for i, p := range paths {
		if p.Length() <= 0 {
			t.Errorf("path %d length = %v, want > 0", i, p.Length())
		}
	}
}

func TestLineRendererDeterministicBySeed(t *testing.T) {
	_, a := renderKind(t, KindBox, nil)
	_, b := renderKind(t, KindBox, nil)

	for i := range a {
		pa, pb := a[i].(*StrokePath), b[i].(*StrokePath)
		for j := range pa.Points() {
			if pa.Points()[j] != pb.Points()[j] {
				t.Fatalf("path %d point %d differs between identical seeds", i, j)
			}
		}
	}
}

func TestLineRendererFirstIterationUnjittered(t *testing.T) {
	_, paths := renderKind(t, KindUnderline, func(c *Config) { c.Padding = Padding{} })
	p := paths[0].(*StrokePath)

	// Underline hugs the rectangle's bottom edge.
	want := []Vec2{{10, 60}, {210, 60}}
	for i, pt := range p.Points() {
		if pt != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, pt, want[i])
		}
	}
}

func TestLineRendererPaddingExpands(t *testing.T) {
	_, paths := renderKind(t, KindUnderline, func(c *Config) { c.Padding = UniformPadding(5) })
	p := paths[0].(*StrokePath)

	if got := p.Points()[0]; got != (Vec2{X: 5, Y: 65}) {
		t.Errorf("padded underline start = %+v, want {5 65}", got)
	}
}

func TestLineRendererHighlightWidth(t *testing.T) {
	_, paths := renderKind(t, KindHighlight, nil)
	p := paths[0].(*StrokePath)

	if got := p.Width(); got != 40*0.95 {
		t.Errorf("highlight width = %v, want 95%% of rect height", got)
	}
}

func TestLineRendererDurationSharesSumToTotal(t *testing.T) {
	_, paths := renderKind(t, KindCrossedOff, nil)

	var total time.Duration
	for _, p := range paths {
		total += p.(*StrokePath).duration
	}
	// Truncation may shave a few nanoseconds per path.
	if diff := 400*time.Millisecond - total; diff < 0 || diff > time.Duration(len(paths)) {
		t.Errorf("summed durations = %v, want ~400ms", total)
	}
}

func TestStrokePathProgress(t *testing.T) {
	host := NewManualHost()
	lr := NewLineRenderer(host)
	s := host.CreateSurface()
	cfg := DefaultConfig(KindUnderline)
	cfg.Iterations = 1
	cfg.Animate = true
	paths := lr.Render(s, Rect{Width: 100, Height: 20}, cfg, 100*time.Millisecond, 400*time.Millisecond, 1)
	p := paths[0].(*StrokePath)

	if got := p.Progress(0); got != 0 {
		t.Errorf("Progress before the delay = %v, want 0", got)
	}
	mid := p.Progress(300 * time.Millisecond)
	if mid <= 0 || mid >= 1 {
		t.Errorf("mid-animation Progress = %v, want in (0, 1)", mid)
	}
	if got := p.Progress(time.Second); got != 1 {
		t.Errorf("Progress after the window = %v, want 1", got)
	}
}

func TestStrokePathProgressUnanimated(t *testing.T) {
	host := NewManualHost()
	lr := NewLineRenderer(host)
	s := host.CreateSurface()
	cfg := DefaultConfig(KindUnderline)
	cfg.Animate = false
	paths := lr.Render(s, Rect{Width: 100, Height: 20}, cfg, 0, 400*time.Millisecond, 1)

	if got := paths[0].(*StrokePath).Progress(0); got != 1 {
		t.Errorf("unanimated Progress = %v, want 1 immediately", got)
	}
}

func TestStrokePathCancelAnimation(t *testing.T) {
	host := NewManualHost()
	lr := NewLineRenderer(host)
	s := host.CreateSurface()
	cfg := DefaultConfig(KindUnderline)
	cfg.Animate = true
	paths := lr.Render(s, Rect{Width: 100, Height: 20}, cfg, 0, 400*time.Millisecond, 1)
	p := paths[0].(*StrokePath)

	p.CancelAnimation()
	if got := p.Progress(0); got != 1 {
		t.Errorf("Progress after cancel = %v, want 1", got)
	}
}

func TestStrokePathReverseDraw(t *testing.T) {
	host := NewManualHost()
	lr := NewLineRenderer(host)
	s := host.CreateSurface()
	paths := lr.Render(s, Rect{Width: 100, Height: 20}, DefaultConfig(KindUnderline), 0, 400*time.Millisecond, 1)
	p := paths[0].(*StrokePath)

	p.ReverseDraw(0, 400*time.Millisecond)
	if got := p.Progress(0); got != 1 {
		t.Errorf("Progress at reverse start = %v, want 1", got)
	}
	mid := p.Progress(200 * time.Millisecond)
	if mid <= 0 || mid >= 1 {
		t.Errorf("mid-reverse Progress = %v, want in (0, 1)", mid)
	}
	if got := p.Progress(time.Second); got != 0 {
		t.Errorf("Progress after reverse completes = %v, want 0", got)
	}
}

func TestStrokePathTranslateAccumulates(t *testing.T) {
	_, paths := renderKind(t, KindUnderline, nil)
	p := paths[0].(*StrokePath)

	p.Translate(3, 4)
	p.Translate(-1, 2)
	if p.Offset() != (Vec2{X: 2, Y: 6}) {
		t.Errorf("Offset = %+v, want {2 6}", p.Offset())
	}
}

func TestStrokePathRemoveIdempotent(t *testing.T) {
	s, paths := renderKind(t, KindUnderline, func(c *Config) { c.Iterations = 1 })
	p := paths[0].(*StrokePath)

	p.Remove()
	p.Remove()
	if len(s.Paths()) != 0 {
		t.Errorf("surface paths = %d, want 0", len(s.Paths()))
	}
}
