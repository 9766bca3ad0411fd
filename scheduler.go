package notation

import "time"

// scheduler coalesces re-measurement work for every annotation on one host.
// Any number of dirty marks within the same display-refresh interval schedule
// at most one flush. One scheduler exists per host for the life of the
// process; with a single host this is the process-wide dirty set.
type scheduler struct {
	host    Host
	watcher resizeWatcher
	dirty   map[*Annotation]struct{}
	pending bool
}

// schedulers is keyed by host so independent hosts (each its own dispatch
// context) get independent dirty sets. Entries are never removed.
var schedulers = map[Host]*scheduler{}

func schedulerFor(h Host) *scheduler {
	if s, ok := schedulers[h]; ok {
		return s
	}
	s := newScheduler(h)
	schedulers[h] = s
	return s
}

// newScheduler picks the resize-notification strategy once, at construction:
// per-element observation when the host has the capability, viewport-only
// otherwise. No per-event capability branching afterwards.
func newScheduler(h Host) *scheduler {
	s := &scheduler{
		host:  h,
		dirty: make(map[*Annotation]struct{}),
	}
	if obs, ok := h.(ElementObserver); ok {
		s.watcher = elementWatcher{obs: obs}
	} else {
		s.watcher = viewportOnlyWatcher{}
	}
	return s
}

// mark records that a might need re-measurement. Idempotent: marking is set
// membership, not queuing. Safe to call at any time, including from inside a
// running flush, in which case the mark lands in the next flush's set.
func (s *scheduler) mark(a *Annotation) {
	s.dirty[a] = struct{}{}
	if s.pending {
		return
	}
	s.pending = true
	s.host.RequestFrame(s.flush)
}

// flush runs once per display-refresh tick. It measures every showing dirty
// annotation first (read pass), then updates only those whose geometry
// actually changed (write pass). Interleaving the two would force a layout
// recomputation per annotation; splitting them keeps a many-annotation flush
// at one. The dirty set is cleared unconditionally: skipped annotations are
// not retried until something marks them again.
func (s *scheduler) flush() {
	s.pending = false
	work := s.dirty
	s.dirty = make(map[*Annotation]struct{}, len(work))

	var start time.Time
	if globalDebug {
		start = time.Now()
	}

	type measured struct {
		a     *Annotation
		rects []Rect
	}
	changed := make([]measured, 0, len(work))
	skipped := 0
	for a := range work {
		if a.state != StateShowing {
			skipped++
			continue
		}
		rects := a.measureRects()
		if a.rectsChanged(rects) {
			changed = append(changed, measured{a: a, rects: rects})
		} else {
			skipped++
		}
	}
	for _, m := range changed {
		m.a.applyUpdate(m.rects)
	}

	if globalDebug {
		debugLogger.Debug("flush",
			"dirty", len(work),
			"changed", len(changed),
			"skipped", skipped,
			"elapsed", time.Since(start))
	}
}

// resizeWatcher delivers size-change notifications for annotation targets.
type resizeWatcher interface {
	watch(e Element, fn func()) (cancel func())
}

// elementWatcher forwards to the host's per-element observation capability.
type elementWatcher struct {
	obs ElementObserver
}

func (w elementWatcher) watch(e Element, fn func()) func() {
	return w.obs.ObserveResize(e, fn)
}

// viewportOnlyWatcher is the degraded fallback: annotations always register
// for viewport resizes separately, so there is nothing to install here.
// Per-element size-only changes go undetected until the next viewport event.
type viewportOnlyWatcher struct{}

func (viewportOnlyWatcher) watch(Element, func()) func() {
	return func() {}
}
