package notation

import (
	"os"

	"github.com/charmbracelet/log"
)

// globalDebug gates the scheduler's per-flush diagnostics. Off by default so
// the flush stays silent on the hot path.
var globalDebug bool

// debugLogger writes structured diagnostics to stderr. Flush stats are logged
// at debug level.
var debugLogger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "notation",
	Level:  log.WarnLevel,
})

// SetDebugMode enables or disables debug mode. When enabled, every scheduler
// flush logs its dirty/changed/skipped counts and elapsed time.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
	if enabled {
		debugLogger.SetLevel(log.DebugLevel)
	} else {
		debugLogger.SetLevel(log.WarnLevel)
	}
}
