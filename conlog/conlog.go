// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the sink for text meant for the console.
package conlog

import (
	"fmt"
	"log/slog"
	"strings"
)

func defaultPrintf(format string, v ...interface{}) {
	slog.Info(strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

var (
	p  = defaultPrintf
	sp = defaultPrintf
)

// SetPrintf replaces the sink and returns the previous one.
func SetPrintf(f func(string, ...interface{})) func(string, ...interface{}) {
	old := p
	p = f
	return old
}

func SetSafePrintf(f func(string, ...interface{})) func(string, ...interface{}) {
	old := sp
	sp = f
	return old
}

func Printf(format string, v ...interface{}) {
	p(format, v...)
}

// SafePrintf prints without triggering a screen update.
func SafePrintf(format string, v ...interface{}) {
	sp(format, v...)
}
