// SPDX-License-Identifier: GPL-2.0-or-later

// Package qtime measures wall clock time between frames.
package qtime

import (
	"time"
)

type Clock struct {
	start time.Time
	last  time.Time
}

func NewClock() *Clock {
	now := time.Now()
	return &Clock{start: now, last: now}
}

// Since returns the time since the clock was created.
func (c *Clock) Since() time.Duration {
	return time.Since(c.start)
}

// Frame returns the seconds since the previous call of Frame.
func (c *Clock) Frame() float64 {
	now := time.Now()
	d := now.Sub(c.last)
	c.last = now
	return d.Seconds()
}

// Sleep waits until at least d passed since the previous call of Frame.
func (c *Clock) Sleep(d time.Duration) {
	if rest := d - time.Since(c.last); rest > 0 {
		time.Sleep(rest)
	}
}
