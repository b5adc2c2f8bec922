// This file is part of gba-sub000.
//
// gba-sub000 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gba-sub000 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// Package logger provides a single package-level structured logger, tagged
// by subsystem, used for conditions the core must not fail on but which are
// worth surfacing: unmapped memory accesses and undefined-instruction traps
// (plus the main loop's start and prefs-loading warnings). Decode cache
// invalidation and IRQ entry/exit are not logged.
//
// Nothing in the step loop's hot path depends on the logger being cheap;
// callers that care about interpreter throughput should check Enabled()
// before building a log line, the way the ARM core's disassembleToStdout
// flag gates its own debug output.
package logger

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var std = logrus.New()

var enabled atomic.Bool

func init() {
	std.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	enabled.Store(false)
}

// SetEnabled turns subsystem logging on or off. Disabled by default, the
// same way the original's disassembleToStdout constant defaults to false.
func SetEnabled(v bool) {
	enabled.Store(v)
}

// Enabled reports whether logging is currently switched on. Hot-path callers
// use this to skip building a log line entirely.
func Enabled() bool {
	return enabled.Load()
}

// SetLevel adjusts the minimum level that will be emitted.
func SetLevel(level logrus.Level) {
	std.SetLevel(level)
}

// Logf logs a formatted line tagged with subsystem, mirroring the free
// function the teacher's own logger package exposes.
func Logf(subsystem string, format string, args ...interface{}) {
	if !enabled.Load() {
		return
	}
	std.WithField("subsystem", subsystem).Debugf(format, args...)
}

// Warnf logs a warning-level line regardless of the Enabled() gate; used for
// conditions that indicate a real implementation bug rather than expected
// hardware-quirk behavior.
func Warnf(subsystem string, format string, args ...interface{}) {
	std.WithField("subsystem", subsystem).Warnf(format, args...)
}
