// Package notation overlays hand-drawn-style decorative markings (underline,
// box, circle, highlight, strike-through, crossed-off, bracket) on elements
// of a retained visual tree, keeps them attached as the underlying elements
// move, resize, or reflow, and animates their appearance and disappearance.
//
// # Quick start
//
// Bind an annotation to a target element through a host and a renderer, then
// show it:
//
//	host := notation.NewEbitenHost()
//	renderer := notation.NewLineRenderer(host)
//
//	a := notation.New(host, renderer, target, notation.DefaultConfig(notation.KindUnderline))
//	a.Show()
//
// The host supplies the platform primitives (overlay surfaces, the
// display-refresh tick, microtasks, timers, resize notification); the
// renderer turns rectangles into strokes. [EbitenHost] runs on Ebitengine,
// [ManualHost] is a deterministic host for tests and headless use, and any
// implementation of [Host] and [Renderer] works.
//
// # Lifecycle
//
// An [Annotation] is unattached, not showing, or showing. New attaches
// immediately when the target has a parent; [Annotation.Show] renders,
// [Annotation.Hide] clears (optionally with a reverse-draw animation), and
// [Annotation.Remove] releases the overlay for good. Layout changes are
// coalesced: however many resize events arrive within one display-refresh
// interval, each affected annotation is measured once, and a pure move of
// the target translates the existing strokes instead of redrawing them.
//
// # Sequencing
//
// A [Group] staggers the entrance of several annotations so they draw one
// after another:
//
//	g := notation.NewGroup(first, second, third)
//	g.Show()
//
// Animation pacing comes from the two process-wide curves returned by
// [Curves], built on [gween] easing functions.
//
// [gween]: https://github.com/tanema/gween
package notation
