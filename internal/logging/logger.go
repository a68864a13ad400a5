// Package logging holds the package-level logger shared by the widget engines
// and the command line tools.
package logging

import (
	"fmt"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Engines log through the helpers below so a
// host can swap L (or its level) without touching call sites.
var L = clog.NewWithOptions(os.Stderr, clog.Options{
	Prefix: "corewidgets",
	Level:  clog.WarnLevel,
})

// SetVerbose switches L between debug and warn level.
func SetVerbose(verbose bool) {
	if verbose {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.WarnLevel)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
