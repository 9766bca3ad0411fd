package notation

import "github.com/tanema/gween/ease"

// Keyframes holds the two named animation curves shared by every annotation:
// the entrance draw-in and the hide draw-out. Hosts and renderers read them
// via Curves and apply them to stroke-reveal progress.
type Keyframes struct {
	DrawIn  ease.TweenFunc
	DrawOut ease.TweenFunc
}

// KeyframeInstaller is an optional Host capability. Hosts whose rendering
// layer needs a one-time global registration of the animation curves (for
// example a stylesheet-backed host) receive exactly one InstallKeyframes
// call per process, before the first annotation attaches.
type KeyframeInstaller interface {
	InstallKeyframes(k Keyframes)
}

func defaultCurves() Keyframes {
	return Keyframes{
		DrawIn:  ease.OutSine,
		DrawOut: ease.InSine,
	}
}

var keyframes struct {
	installed bool
	curves    Keyframes
}

// ensureKeyframes lazily installs the curves once per process. Called from
// New before the first annotation is built.
func ensureKeyframes(h Host) {
	if keyframes.installed {
		return
	}
	keyframes.curves = defaultCurves()
	if inst, ok := h.(KeyframeInstaller); ok {
		inst.InstallKeyframes(keyframes.curves)
	}
	keyframes.installed = true
}

// Curves returns the process-wide animation curves, or the defaults if no
// annotation has been created yet.
func Curves() Keyframes {
	if !keyframes.installed {
		return defaultCurves()
	}
	return keyframes.curves
}
