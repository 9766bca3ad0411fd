package notation

import (
	"math"
	"time"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default annotation stroke color.
var ColorBlack = Color{0, 0, 0, 1}

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Annotation geometry is expressed
// relative to the owning overlay surface's origin.
type Rect struct {
	X, Y, Width, Height float64
}

// roundCoord rounds a coordinate to the nearest integer. Layout produces
// sub-pixel jitter; all geometry comparisons go through this to absorb it.
func roundCoord(v float64) int {
	return int(math.Round(v))
}

// RoundedEq reports whether r and other are equal once every coordinate is
// rounded to the nearest integer.
func (r Rect) RoundedEq(other Rect) bool {
	return roundCoord(r.X) == roundCoord(other.X) &&
		roundCoord(r.Y) == roundCoord(other.Y) &&
		roundCoord(r.Width) == roundCoord(other.Width) &&
		roundCoord(r.Height) == roundCoord(other.Height)
}

// Kind selects the visual marking drawn for an annotation.
type Kind uint8

const (
	KindUnderline     Kind = iota // line under the target
	KindBox                       // outline around the target
	KindCircle                    // ellipse around the target
	KindHighlight                 // thick stroke behind the target
	KindStrikeThrough             // horizontal line through the middle
	KindCrossedOff                // two diagonal lines corner to corner
	KindBracket                   // bracket along one or more edges
)

// Side identifies an edge of the target, used by bracket annotations.
type Side uint8

const (
	SideLeft   Side = iota // left edge
	SideRight              // right edge
	SideTop                // top edge
	SideBottom             // bottom edge
)

// Padding is the space between the target's bounding box and the drawn
// marking, per edge.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding returns a Padding with the same value on every edge.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Default configuration values applied by New when the corresponding Config
// field is left zero.
const (
	DefaultDuration    = 800 * time.Millisecond
	DefaultStrokeWidth = 1.0
	DefaultIterations  = 2
)

// Config describes how an annotation looks and animates. A Config is captured
// by value at construction time; mutating the caller's copy afterwards has no
// effect on a live annotation. Use the Annotation setters instead.
type Config struct {
	Kind        Kind
	Color       Color
	StrokeWidth float64 // 0 means DefaultStrokeWidth
	Padding     Padding
	Brackets    []Side // edges drawn for KindBracket; empty means right edge

	Multiline bool // measure one rectangle per visual line fragment

	Animate           bool
	AnimationDuration time.Duration // 0 means DefaultDuration
	AnimateOnHide     bool
	Iterations        int // 0 means DefaultIterations
}

// DefaultConfig returns a Config for the given kind with the library defaults:
// black 1px stroke, 5px padding, two iterations, animated 800ms entrance.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:              kind,
		Color:             ColorBlack,
		StrokeWidth:       DefaultStrokeWidth,
		Padding:           UniformPadding(5),
		Animate:           true,
		AnimationDuration: DefaultDuration,
		Iterations:        DefaultIterations,
	}
}

// normalized returns a copy with zero fields replaced by defaults and the
// Brackets slice cloned, so the annotation's snapshot is independent of the
// caller's value.
func (c Config) normalized() Config {
	if c.AnimationDuration == 0 {
		c.AnimationDuration = DefaultDuration
	}
	if c.StrokeWidth == 0 {
		c.StrokeWidth = DefaultStrokeWidth
	}
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
	if len(c.Brackets) == 0 {
		c.Brackets = []Side{SideRight}
	} else {
		c.Brackets = append([]Side(nil), c.Brackets...)
	}
	return c
}
