// SPDX-License-Identifier: GPL-2.0-or-later

package gametime

import (
	"goportal/cvars"
	"goportal/math"
)

const (
	minFrameTime = 0.001
	maxFrameTime = 0.1
)

// GameTime is the simulated clock. It only advances through Advance.
type GameTime struct {
	time       float64
	oldTime    float64
	frameTime  float64
	frameCount int
}

func (h *GameTime) Reset() {
	*h = GameTime{frameTime: maxFrameTime}
}

func (h *GameTime) Time() float64      { return h.time }
func (h *GameTime) OldTime() float64   { return h.oldTime }
func (h *GameTime) FrameTime() float64 { return h.frameTime }
func (h *GameTime) FrameCount() int    { return h.frameCount }

// Advance moves the clock by the real elapsed seconds and returns the
// length of the simulated frame.
func (h *GameTime) Advance(elapsed float64) float64 {
	h.frameTime = elapsed
	if cvars.HostTimeScale.Value() > 0 {
		h.frameTime *= float64(cvars.HostTimeScale.Value())
	} else if cvars.HostFrameRate.Value() > 0 {
		h.frameTime = float64(cvars.HostFrameRate.Value())
	}
	h.frameTime = math.Clamp(minFrameTime, h.frameTime, maxFrameTime)
	h.oldTime = h.time
	h.time += h.frameTime
	h.frameCount++
	return h.frameTime
}
