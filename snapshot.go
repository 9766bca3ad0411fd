package notation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// pathLister is implemented by surfaces that expose their attached paths.
// ManualSurface and EbitenSurface both do.
type pathLister interface {
	Paths() []Path
}

// WriteSVG serializes a surface's stroke paths to a labeled SVG file in dir,
// for visual inspection and golden tests. Paths that are not LineRenderer
// strokes are skipped. The file name is the timestamped, sanitized label;
// the created path is returned.
func WriteSVG(s Surface, label, dir string) (string, error) {
	lister, ok := s.(pathLister)
	if !ok {
		return "", fmt.Errorf("snapshot: surface %T does not expose its paths", s)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
	}

	b := s.Bounds()
	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g">`+"\n",
		b.Width, b.Height)
	for _, p := range lister.Paths() {
		sp, ok := p.(*StrokePath)
		if !ok {
			continue
		}
		off := sp.Offset()
		var pts strings.Builder
		for i, pt := range sp.Points() {
			if i > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.2f,%.2f", pt.X+off.X, pt.Y+off.Y)
		}
		fmt.Fprintf(&svg,
			`  <polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
			pts.String(), hexColor(sp.Color()), sp.Width())
	}
	svg.WriteString("</svg>\n")

	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.svg", stamp, sanitizeLabel(label)))
	if err := os.WriteFile(path, []byte(svg.String()), 0o644); err != nil {
		return "", fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return path, nil
}

// hexColor formats a Color as #rrggbb or #rrggbbaa.
func hexColor(c Color) string {
	to255 := func(v float64) int {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return int(v*255 + 0.5)
	}
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B), to255(c.A))
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
