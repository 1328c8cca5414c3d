// Package logging provides the package-global leveled logger shared by
// nanocoap and gnrccoap, adapted from the teacher's debug.go: a single
// *logs.BeeLogger, a debug-enable toggle, and a way for a host
// application to swap in its own logger instance.
package logging

import (
	"github.com/astaxie/beego/logs"
)

var (
	debugEnabled bool

	// Log is the shared logger. Replace it with SetLogger before the
	// receive loop starts if the host application wants its own
	// beego logger (e.g. with file output or a different level).
	Log *logs.BeeLogger
)

func init() {
	Log = logs.NewLogger(10000)
	Log.SetLogger(logs.AdapterConsole, `{"level":7}`)
	Log.EnableFuncCallDepth(true)
	Log.SetLogFuncCallDepth(3)
}

// SetDebug toggles verbose trace logging (parse failures, dropped
// datagrams, dispatch details). Off by default, matching the teacher's
// debugEnable default.
func SetDebug(enable bool) {
	debugEnabled = enable
}

// Debug reports whether verbose trace logging is enabled.
func Debug() bool {
	return debugEnabled
}

// SetLogger installs a host-supplied logger, ignoring a nil argument.
func SetLogger(l *logs.BeeLogger) {
	if l != nil {
		Log = l
	}
}

// Tracef logs at trace/informational level only when debug logging is
// enabled, mirroring the teacher's TraceInfo gate in server.go.
func Tracef(format string, args ...interface{}) {
	if debugEnabled {
		Log.Informational(format, args...)
	}
}

// Errorf always logs at error level, mirroring the teacher's
// TraceError calls in handlePacket's recover path.
func Errorf(format string, args ...interface{}) {
	Log.Error(format, args...)
}
