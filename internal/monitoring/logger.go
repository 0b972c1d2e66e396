// Package monitoring holds the shared diagnostic logger for the
// navigation stack.
package monitoring

import "log"

// Logf is the package-level diagnostic logger used by the costmap and
// clearing packages. It defaults to log.Printf; tests mute it and binaries
// may redirect it via SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
