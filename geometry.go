package notation

import "math"

// TranslateTolerance is the maximum per-rectangle deviation (in either axis)
// from the averaged translation delta for a multi-line geometry change to
// still count as a uniform position-only move. Larger deviations mean the
// lines moved inconsistently, which falls through to a full re-render.
var TranslateTolerance = 2.0

// measureRects queries the target's current geometry and converts it to the
// overlay surface's local frame: one rectangle per visual line fragment when
// multiline measurement is enabled, else the single overall bounding box.
// Returns nil when the annotation has no surface or the target is detached.
func (a *Annotation) measureRects() []Rect {
	if a.surface == nil || !a.target.Attached() {
		return nil
	}
	origin := a.surface.Bounds()
	if a.cfg.Multiline {
		lines := a.target.LineBounds()
		rects := make([]Rect, len(lines))
		for i, lb := range lines {
			rects[i] = Rect{
				X:      lb.X - origin.X,
				Y:      lb.Y - origin.Y,
				Width:  lb.Width,
				Height: lb.Height,
			}
		}
		return rects
	}
	b := a.target.Bounds()
	return []Rect{{
		X:      b.X - origin.X,
		Y:      b.Y - origin.Y,
		Width:  b.Width,
		Height: b.Height,
	}}
}

// rectsChanged compares candidate rectangles against the last-known geometry.
// True if the counts differ or any pair differs after rounding. An annotation
// with no prior geometry reports unchanged; the first render is handled
// separately by Show.
func (a *Annotation) rectsChanged(rects []Rect) bool {
	if a.lastRects == nil {
		return false
	}
	if len(rects) != len(a.lastRects) {
		return true
	}
	for i := range rects {
		if !rects[i].RoundedEq(a.lastRects[i]) {
			return true
		}
	}
	return false
}

// translationDelta classifies a geometry change. When every rectangle kept
// its rounded size and the whole set moved by a uniform offset, it returns
// that offset and ok=true; the caller then translates the existing paths
// instead of regenerating them. For multi-line sets the per-line deltas are
// averaged, and any line deviating from the average by more than
// TranslateTolerance in either axis fails the classification.
func translationDelta(prev, next []Rect) (dx, dy float64, ok bool) {
	if len(prev) == 0 || len(prev) != len(next) {
		return 0, 0, false
	}
	for i := range prev {
		if roundCoord(prev[i].Width) != roundCoord(next[i].Width) ||
			roundCoord(prev[i].Height) != roundCoord(next[i].Height) {
			return 0, 0, false
		}
	}
	if len(prev) == 1 {
		return next[0].X - prev[0].X, next[0].Y - prev[0].Y, true
	}
	var sumX, sumY float64
	for i := range prev {
		sumX += next[i].X - prev[i].X
		sumY += next[i].Y - prev[i].Y
	}
	n := float64(len(prev))
	avgX, avgY := sumX/n, sumY/n
	for i := range prev {
		if math.Abs(next[i].X-prev[i].X-avgX) > TranslateTolerance ||
			math.Abs(next[i].Y-prev[i].Y-avgY) > TranslateTolerance {
			return 0, 0, false
		}
	}
	return avgX, avgY, true
}

// applyUpdate reacts to a detected geometry change: a uniform position-only
// move translates the existing paths, anything else discards them and
// re-renders from scratch with animation suppressed. Re-rendering here is a
// geometry correction, not a user-visible entrance.
func (a *Annotation) applyUpdate(rects []Rect) {
	if dx, dy, ok := translationDelta(a.lastRects, rects); ok {
		for _, p := range a.paths {
			p.Translate(dx, dy)
		}
	} else {
		a.render(rects, false)
	}
	a.lastRects = rects
}
