package notation

import "time"

// render clears any prior paths and renders the given rectangles through the
// renderer. A full-strength render uses the configuration verbatim; when
// animate is false a copy with animation disabled is used instead.
//
// Each rectangle receives a share of the total animation duration
// proportional to its width, offset by the accumulated delay of the
// rectangles before it (plus the annotation's start delay), so a wide line
// animates longer than a narrow one and the lines draw in sequence.
func (a *Annotation) render(rects []Rect, animate bool) {
	for _, p := range a.paths {
		p.Remove()
	}
	a.paths = nil
	if len(rects) == 0 || a.surface == nil {
		return
	}

	cfg := a.cfg
	if !animate {
		cfg.Animate = false
	}

	var totalWidth float64
	for _, r := range rects {
		totalWidth += r.Width
	}

	delay := a.startDelay
	for _, r := range rects {
		var dur time.Duration
		if totalWidth > 0 {
			dur = time.Duration(float64(cfg.AnimationDuration) * (r.Width / totalWidth))
		} else {
			dur = cfg.AnimationDuration / time.Duration(len(rects))
		}
		a.paths = append(a.paths, a.renderer.Render(a.surface, r, cfg, delay, dur, a.seed)...)
		delay += dur
	}
}

// drawOut plays the reverse-draw animation over the given paths and defers
// their physical removal until it completes. Paths erase in reverse draw
// order, each taking a share of the total duration proportional to its
// stroke length, so the erase pace matches the entrance pace.
//
// The removal timer must tolerate the annotation being removed in the
// meantime: a removed annotation skips the cleanup entirely, and Path.Remove
// itself is required to tolerate an already-detached surface.
func (a *Annotation) drawOut(paths []Path) {
	if len(paths) == 0 {
		return
	}

	lengths := make([]float64, len(paths))
	var totalLength float64
	for i, p := range paths {
		lengths[i] = p.Length()
		totalLength += lengths[i]
	}

	dur := a.cfg.AnimationDuration
	var delay time.Duration
	for i := len(paths) - 1; i >= 0; i-- {
		p := paths[i]
		p.CancelAnimation()
		share := dur
		if totalLength > 0 {
			share = time.Duration(float64(dur) * (lengths[i] / totalLength))
		}
		pathDelay := a.startDelay + delay
		a.host.RequestFrame(func() {
			p.ReverseDraw(pathDelay, share)
		})
		delay += share
	}

	a.host.After(a.startDelay+dur, func() {
		if a.removed {
			return
		}
		for _, p := range paths {
			p.Remove()
		}
	})
}
