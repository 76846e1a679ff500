package elements

import (
	"fmt"
	"sync/atomic"

	"github.com/golang/glog"
)

var debugFlag atomic.Bool

// SetDebug enables tracing of readiness probes, scrolls and click fallbacks.
// Tracing is also enabled by running with -v=2.
func SetDebug(debug bool) {
	debugFlag.Store(debug)
}

func debugLog(format string, args ...interface{}) {
	if !debugFlag.Load() && !bool(glog.V(2)) {
		return
	}
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}

func warnf(format string, args ...interface{}) {
	glog.WarningDepth(1, fmt.Sprintf(format, args...))
}
