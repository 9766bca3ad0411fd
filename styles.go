package notation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// LoadStyles parses a TOML style-preset sheet and returns the named configs.
// Omitted fields take the DefaultConfig values for the preset's kind.
//
//	[styles.callout]
//	kind = "circle"
//	color = "#e91e63"
//	stroke_width = 2.0
//	padding = [4, 8, 4, 8]
//	duration = "600ms"
//	iterations = 3
func LoadStyles(data []byte) (map[string]Config, error) {
	var file struct {
		Styles map[string]styleEntry `toml:"styles"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse styles: %w", err)
	}
	if len(file.Styles) == 0 {
		return nil, fmt.Errorf("parse styles: no [styles.*] tables")
	}
	out := make(map[string]Config, len(file.Styles))
	for name, entry := range file.Styles {
		cfg, err := entry.config()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		out[name] = cfg
	}
	return out, nil
}

type styleEntry struct {
	Kind          Kind      `toml:"kind"`
	Color         *Color    `toml:"color"`
	StrokeWidth   float64   `toml:"stroke_width"`
	Padding       []float64 `toml:"padding"`
	Brackets      []Side    `toml:"brackets"`
	Multiline     bool      `toml:"multiline"`
	Animate       *bool     `toml:"animate"`
	Duration      string    `toml:"duration"`
	AnimateOnHide bool      `toml:"animate_on_hide"`
	Iterations    int       `toml:"iterations"`
}

func (e styleEntry) config() (Config, error) {
	cfg := DefaultConfig(e.Kind)
	if e.Color != nil {
		cfg.Color = *e.Color
	}
	if e.StrokeWidth > 0 {
		cfg.StrokeWidth = e.StrokeWidth
	}
	switch len(e.Padding) {
	case 0:
	case 1:
		cfg.Padding = UniformPadding(e.Padding[0])
	case 4:
		cfg.Padding = Padding{
			Top:    e.Padding[0],
			Right:  e.Padding[1],
			Bottom: e.Padding[2],
			Left:   e.Padding[3],
		}
	default:
		return Config{}, fmt.Errorf("padding wants 1 or 4 values, got %d", len(e.Padding))
	}
	if len(e.Brackets) > 0 {
		cfg.Brackets = e.Brackets
	}
	cfg.Multiline = e.Multiline
	if e.Animate != nil {
		cfg.Animate = *e.Animate
	}
	if e.Duration != "" {
		d, err := time.ParseDuration(e.Duration)
		if err != nil {
			return Config{}, fmt.Errorf("duration: %w", err)
		}
		cfg.AnimationDuration = d
	}
	cfg.AnimateOnHide = e.AnimateOnHide
	if e.Iterations > 0 {
		cfg.Iterations = e.Iterations
	}
	return cfg, nil
}

// --- Text forms ---

var kindNames = map[Kind]string{
	KindUnderline:     "underline",
	KindBox:           "box",
	KindCircle:        "circle",
	KindHighlight:     "highlight",
	KindStrikeThrough: "strike-through",
	KindCrossedOff:    "crossed-off",
	KindBracket:       "bracket",
}

// String returns the kind's text form, as used in style sheets.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// UnmarshalText parses a kind name such as "underline" or "crossed-off".
func (k *Kind) UnmarshalText(text []byte) error {
	name := string(text)
	for kind, s := range kindNames {
		if s == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", name)
}

var sideNames = map[Side]string{
	SideLeft:   "left",
	SideRight:  "right",
	SideTop:    "top",
	SideBottom: "bottom",
}

// String returns the side's text form.
func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// UnmarshalText parses a side name such as "left".
func (s *Side) UnmarshalText(text []byte) error {
	name := string(text)
	for side, n := range sideNames {
		if n == name {
			*s = side
			return nil
		}
	}
	return fmt.Errorf("unknown side %q", name)
}

// UnmarshalText parses a hex color: #rgb, #rrggbb, or #rrggbbaa.
func (c *Color) UnmarshalText(text []byte) error {
	s, ok := strings.CutPrefix(string(text), "#")
	if !ok {
		return fmt.Errorf("color %q: want leading '#'", string(text))
	}
	switch len(s) {
	case 3:
		var expanded strings.Builder
		for _, r := range s {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		s = expanded.String()
	case 6, 8:
	default:
		return fmt.Errorf("color %q: want 3, 6, or 8 hex digits", string(text))
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return fmt.Errorf("color %q: %w", string(text), err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	c.R = float64(v>>24&0xff) / 255
	c.G = float64(v>>16&0xff) / 255
	c.B = float64(v>>8&0xff) / 255
	c.A = float64(v&0xff) / 255
	return nil
}
