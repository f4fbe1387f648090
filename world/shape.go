// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"github.com/chewxy/math32"

	"goportal/collision"
	"goportal/math/vec"
)

// obb is an oriented box in world space. Capsules are approximated by the
// box enclosing them.
type obb struct {
	center vec.Vec3
	axes   [3]vec.Vec3
	half   vec.Vec3
}

func newOBB(s collision.Shape, t vec.Transform) obb {
	return obb{
		center: t.Translation,
		axes:   [3]vec.Vec3{t.Forward(), t.Right(), t.Up()},
		half:   s.Bounds(),
	}
}

func (o obb) inflate(r float32) obb {
	o.half = vec.Add(o.half, vec.Vec3{X: r, Y: r, Z: r})
	return o
}

// aabb returns the axis aligned box enclosing o.
func (o obb) aabb() (mins, maxs vec.Vec3) {
	var e vec.Vec3
	for i := 0; i < 3; i++ {
		a := o.axes[i].Scale(o.half.Idx(i))
		e = vec.Add(e, vec.Vec3{X: math32.Abs(a.X), Y: math32.Abs(a.Y), Z: math32.Abs(a.Z)})
	}
	return vec.Sub(o.center, e), vec.Add(o.center, e)
}

func (o obb) radius(axis vec.Vec3) float32 {
	var r float32
	for i := 0; i < 3; i++ {
		r += math32.Abs(vec.Dot(axis, o.axes[i])) * o.half.Idx(i)
	}
	return r
}

// penetration runs a separating axis test between a and b. It returns the
// depth of the overlap and the unit direction which moves a out of b.
func penetration(a, b obb) (float32, vec.Vec3, bool) {
	axes := make([]vec.Vec3, 0, 15)
	axes = append(axes, a.axes[:]...)
	axes = append(axes, b.axes[:]...)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c := vec.Cross(a.axes[i], b.axes[j])
			if c.LengthSquared() > 1e-6 {
				axes = append(axes, c.Normalize())
			}
		}
	}
	d := vec.Sub(b.center, a.center)
	best := float32(math32.MaxFloat32)
	var dir vec.Vec3
	for _, l := range axes {
		dist := vec.Dot(d, l)
		overlap := a.radius(l) + b.radius(l) - math32.Abs(dist)
		if overlap <= 0 {
			return 0, vec.Vec3{}, false
		}
		if overlap < best {
			best = overlap
			if dist > 0 {
				dir = l.Neg()
			} else {
				dir = l
			}
		}
	}
	return best, dir, true
}

// raycast intersects the segment start+t*(end-start), t in [0,1], with o.
// Segments starting inside o do not hit.
func raycast(o obb, start, end vec.Vec3) (float32, vec.Vec3, bool) {
	local := func(p vec.Vec3) vec.Vec3 {
		d := vec.Sub(p, o.center)
		return vec.Vec3{X: vec.Dot(d, o.axes[0]), Y: vec.Dot(d, o.axes[1]), Z: vec.Dot(d, o.axes[2])}
	}
	s := local(start)
	dir := vec.Sub(local(end), s)

	tmin, tmax := float32(0), float32(1)
	normalAxis := -1
	var normalSign float32
	inside := true
	for i := 0; i < 3; i++ {
		si, di, hi := s.Idx(i), dir.Idx(i), o.half.Idx(i)
		if si < -hi || si > hi {
			inside = false
		}
		if math32.Abs(di) < 1e-9 {
			if si < -hi || si > hi {
				return 0, vec.Vec3{}, false
			}
			continue
		}
		inv := 1 / di
		t1 := (-hi - si) * inv
		t2 := (hi - si) * inv
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			normalAxis = i
			normalSign = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, vec.Vec3{}, false
		}
	}
	if inside || normalAxis == -1 {
		return 0, vec.Vec3{}, false
	}
	return tmin, o.axes[normalAxis].Scale(normalSign), true
}
