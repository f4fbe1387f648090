// SPDX-License-Identifier: GPL-2.0-or-later

package gametime

import (
	"testing"

	"goportal/cvars"
)

func TestAdvance(t *testing.T) {
	var g GameTime
	g.Reset()
	if got := g.Advance(1.0 / 60); got != 1.0/60 {
		t.Errorf("Advance(1/60) = %v", got)
	}
	if got := g.Advance(5); got != maxFrameTime {
		t.Errorf("Advance(5) = %v, want %v", got, maxFrameTime)
	}
	if g.FrameCount() != 2 {
		t.Errorf("FrameCount() = %v", g.FrameCount())
	}
	if g.OldTime() != 1.0/60 {
		t.Errorf("OldTime() = %v", g.OldTime())
	}
}

func TestFrameRate(t *testing.T) {
	cvars.HostFrameRate.SetValue(0.05)
	defer cvars.HostFrameRate.Reset()
	var g GameTime
	if got := g.Advance(0.01); got != float64(float32(0.05)) {
		t.Errorf("Advance with host_framerate = %v", got)
	}
}
