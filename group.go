package notation

import "time"

// Group sequences the animations of an ordered list of annotations: each
// member's entrance is delayed by the summed animation durations of the
// members before it, so showing the group reveals the annotations one after
// another instead of all at once.
//
// Delays are computed once, at construction. Changing a member's animation
// duration afterwards does not re-space the group.
type Group struct {
	members []*Annotation
}

// NewGroup creates a group over the given annotations, in order, and assigns
// each member its cumulative start delay.
func NewGroup(members ...*Annotation) *Group {
	g := &Group{members: append([]*Annotation(nil), members...)}
	var delay time.Duration
	for _, m := range g.members {
		m.SetStartDelay(delay)
		delay += m.cfg.AnimationDuration
	}
	return g
}

// Show shows every member in list order.
func (g *Group) Show() {
	for _, m := range g.members {
		m.Show()
	}
}

// Hide hides every member in list order. Members configured to animate their
// hide do so.
func (g *Group) Hide() {
	for _, m := range g.members {
		m.Hide(false)
	}
}

// Members returns the group's annotation list. The returned slice MUST NOT
// be mutated by the caller.
func (g *Group) Members() []*Annotation {
	return g.members
}
