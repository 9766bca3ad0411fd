package notation

import (
	"testing"
)

func TestMeasureRectsOverlayLocal(t *testing.T) {
	f := newFixture(t, DefaultConfig(KindUnderline))
	f.surface().SetBounds(Rect{X: 5, Y: 8})

	rects := f.a.measureRects()
	if len(rects) != 1 {
		t.Fatalf("rects = %d, want 1", len(rects))
	}
	want := Rect{X: 5, Y: 12, Width: 200, Height: 40}
	if rects[0] != want {
		t.Errorf("rect = %+v, want %+v (target minus surface origin)", rects[0], want)
	}
}

func TestMeasureRectsMultiline(t *testing.T) {
	cfg := DefaultConfig(KindUnderline)
	cfg.Multiline = true
	f := newFixture(t, cfg)
	f.element.SetLineBounds([]Rect{
		{X: 10, Y: 20, Width: 180, Height: 18},
		{X: 10, Y: 40, Width: 90, Height: 18},
	})

	rects := f.a.measureRects()
	if len(rects) != 2 {
		t.Fatalf("rects = %d, want 2 (one per line fragment)", len(rects))
	}
	if rects[1].Width != 90 {
		t.Errorf("rects[1].Width = %v, want 90", rects[1].Width)
	}
}

func TestMeasureRectsDetachedNil(t *testing.T) {
	f := newFixture(t, DefaultConfig(KindUnderline))
	f.element.Detach()
	if got := f.a.measureRects(); got != nil {
		t.Errorf("measureRects on detached target = %v, want nil", got)
	}
}

func TestRectsChangedFirstMeasurement(t *testing.T) {
	f := newFixture(t, DefaultConfig(KindUnderline))
	// No prior geometry: nothing to diff against.
	if f.a.rectsChanged([]Rect{{Width: 50, Height: 10}}) {
		t.Error("first measurement must report unchanged")
	}
}

func TestRectsChangedRounding(t *testing.T) {
	f := newFixture(t, DefaultConfig(KindUnderline))
	f.a.lastRects = []Rect{{X: 10, Y: 20, Width: 200, Height: 40}}

	if f.a.rectsChanged([]Rect{{X: 10.3, Y: 19.8, Width: 200.2, Height: 40}}) {
		t.Error("sub-pixel jitter (<0.5) must not count as a change")
	}
	if !f.a.rectsChanged([]Rect{{X: 11, Y: 20, Width: 200, Height: 40}}) {
		t.Error("a whole-coordinate move must count as a change")
	}
	if !f.a.rectsChanged([]Rect{{X: 10, Y: 20, Width: 200, Height: 40}, {X: 10, Y: 60, Width: 200, Height: 40}}) {
		t.Error("a rect-count change must count as a change")
	}
}

func TestTranslationDeltaSingleRect(t *testing.T) {
	prev := []Rect{{X: 10, Y: 20, Width: 100, Height: 30}}
	next := []Rect{{X: 25, Y: 14, Width: 100, Height: 30}}

	dx, dy, ok := translationDelta(prev, next)
	if !ok {
		t.Fatal("pure move should classify as a translation")
	}
	if dx != 15 || dy != -6 {
		t.Errorf("delta = (%v, %v), want (15, -6)", dx, dy)
	}
}

func TestTranslationDeltaSizeChange(t *testing.T) {
	prev := []Rect{{X: 10, Y: 20, Width: 100, Height: 30}}
	next := []Rect{{X: 10, Y: 20, Width: 120, Height: 30}}

	if _, _, ok := translationDelta(prev, next); ok {
		t.Error("a size change must fall through to a re-render")
	}
}

func TestTranslationDeltaMultiRectUniform(t *testing.T) {
	prev := []Rect{
		{X: 10, Y: 20, Width: 100, Height: 18},
		{X: 10, Y: 40, Width: 60, Height: 18},
	}
	next := []Rect{
		{X: 14, Y: 25, Width: 100, Height: 18},
		{X: 15, Y: 24.5, Width: 60, Height: 18},
	}

	dx, dy, ok := translationDelta(prev, next)
	if !ok {
		t.Fatal("near-uniform multi-line move should classify as a translation")
	}
	if dx != 4.5 || dy != 4.75 {
		t.Errorf("averaged delta = (%v, %v), want (4.5, 4.75)", dx, dy)
	}
}

func TestTranslationDeltaMultiRectInconsistent(t *testing.T) {
	prev := []Rect{
		{X: 10, Y: 20, Width: 100, Height: 18},
		{X: 10, Y: 40, Width: 60, Height: 18},
	}
	// Second line drifts 10px further than the first: a reflow, not a move.
	next := []Rect{
		{X: 15, Y: 20, Width: 100, Height: 18},
		{X: 25, Y: 40, Width: 60, Height: 18},
	}

	if _, _, ok := translationDelta(prev, next); ok {
		t.Error("inconsistent per-line deltas must fall through to a re-render")
	}
}

func TestTranslationDeltaToleranceConfigurable(t *testing.T) {
	old := TranslateTolerance
	defer func() { TranslateTolerance = old }()

	prev := []Rect{
		{X: 0, Y: 0, Width: 100, Height: 18},
		{X: 0, Y: 20, Width: 100, Height: 18},
	}
	next := []Rect{
		{X: 10, Y: 0, Width: 100, Height: 18},
		{X: 16, Y: 20, Width: 100, Height: 18},
	}

	if _, _, ok := translationDelta(prev, next); ok {
		t.Fatal("3px deviation exceeds the default tolerance")
	}
	TranslateTolerance = 5
	if _, _, ok := translationDelta(prev, next); !ok {
		t.Error("3px deviation should pass with tolerance raised to 5")
	}
}

func TestApplyUpdateTranslates(t *testing.T) {
	f := newFixture(t, DefaultConfig(KindUnderline))
	f.a.Show()
	p := f.surface().Paths()[0].(*stubPath)

	moved := f.a.lastRects[0]
	moved.X += 30
	moved.Y += 5
	f.a.applyUpdate([]Rect{moved})

	if len(f.renderer.calls) != 1 {
		t.Error("a pure move must not re-render")
	}
	if p.offset != (Vec2{X: 30, Y: 5}) {
		t.Errorf("path offset = %+v, want {30 5}", p.offset)
	}
	if f.a.lastRects[0] != moved {
		t.Error("lastRects should advance to the new geometry")
	}
}

func TestApplyUpdateRerendersOnResize(t *testing.T) {
	f := newFixture(t, DefaultConfig(KindUnderline))
	f.a.Show()

	resized := f.a.lastRects[0]
	resized.Width += 40
	f.a.applyUpdate([]Rect{resized})

	if len(f.renderer.calls) != 2 {
		t.Fatalf("render calls = %d, want 2 (resize forces a rebuild)", len(f.renderer.calls))
	}
	if f.renderer.calls[1].cfg.Animate {
		t.Error("geometry-correction renders must suppress the entrance animation")
	}
	if got := len(f.surface().Paths()); got != 1 {
		t.Errorf("surface paths = %d, want 1 (old paths removed)", got)
	}
}
