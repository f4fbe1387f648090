// SPDX-License-Identifier: GPL-2.0-or-later

package sim

import (
	"goportal/math/vec"
)

type Line struct {
	From, To vec.Vec3
	Color    uint32
}

// DebugLines collects the debug geometry of one frame.
type DebugLines struct {
	lines []Line
}

func (d *DebugLines) Line(from, to vec.Vec3, color uint32) {
	d.lines = append(d.lines, Line{from, to, color})
}

func (d *DebugLines) Lines() []Line { return d.lines }
func (d *DebugLines) Reset()        { d.lines = d.lines[:0] }
