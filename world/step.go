// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"slices"

	"goportal/collision"
	"goportal/math/vec"
)

// Step advances all simulated bodies by dt seconds. Hit and overlap
// handlers run synchronously from inside Step.
func (w *World) Step(dt float32) {
	var ids []collision.BodyID
	for id, b := range w.bodies {
		if b.simulate {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	h := dt / float32(w.cfg.Substeps)
	for s := 0; s < w.cfg.Substeps; s++ {
		for _, id := range ids {
			if b := w.get(id); b != nil && b.simulate {
				w.integrate(b, h)
			}
		}
	}
}

func (w *World) integrate(b *body, h float32) {
	b.linear = vec.Add(b.linear, w.cfg.Gravity.Scale(h))
	step := w.cfg.MaxStepTravel
	if b.ccd {
		e := b.shape.Bounds()
		step = min(step, max(min(e.X, e.Y, e.Z), 1))
	}
	n := min(int(b.linear.Length()*h/step)+1, w.cfg.MaxCCDSteps)
	sh := h / float32(n)
	for i := 0; i < n; i++ {
		b.pose.Translation = vec.Add(b.pose.Translation, b.linear.Scale(sh))
		if a := b.angular.Length(); a > 0 {
			dq := vec.AxisAngle(b.angular.Scale(1/a), a*sh)
			b.pose.Rotation = vec.MulQ(dq, b.pose.Rotation).Normalize()
		}
		w.relink(b)
		// Overlap handlers may change what b collides with, or move it.
		w.updateOverlaps(b)
		if w.get(b.id) == nil {
			return
		}
		w.resolveContacts(b)
		w.updateOverlaps(b)
		if w.get(b.id) == nil {
			return
		}
	}
}

func (w *World) resolveContacts(b *body) {
	mins, maxs := b.obb().aabb()
	for _, id := range w.area.query(mins, maxs) {
		o := w.get(id)
		if o == nil || w.get(b.id) == nil || !w.blocks(b, o) {
			continue
		}
		depth, dir, ok := penetration(b.obb(), o.obb())
		if !ok {
			continue
		}
		relative := b.linear
		reduced := b.mass
		if o.simulate {
			relative = vec.Sub(b.linear, o.linear)
			reduced = b.mass * o.mass / (b.mass + o.mass)
			b.pose.Translation = vec.Add(b.pose.Translation, dir.Scale(depth/2))
			o.pose.Translation = vec.Add(o.pose.Translation, dir.Scale(-depth/2))
			w.relink(o)
		} else {
			b.pose.Translation = vec.Add(b.pose.Translation, dir.Scale(depth))
		}
		w.relink(b)

		var impulse vec.Vec3
		if vn := vec.Dot(relative, dir); vn < 0 {
			impulse = dir.Scale(-vn * reduced)
			b.linear = vec.Add(b.linear, impulse.Scale(1/b.mass))
			if o.simulate {
				o.linear = vec.Sub(o.linear, impulse.Scale(1/o.mass))
			}
		}
		contact := vec.Sub(b.pose.Translation, dir.Scale(b.obb().radius(dir)))
		bh := collision.Hit{Body: o.id, Type: o.typ, Location: contact, Normal: dir, BlockingHit: true}
		oh := collision.Hit{Body: b.id, Type: b.typ, Location: contact, Normal: dir.Neg(), BlockingHit: true}
		for _, h := range b.onHit {
			h(b.id, o.id, bh, impulse)
		}
		if w.get(o.id) == nil {
			continue
		}
		for _, h := range o.onHit {
			h(o.id, b.id, oh, impulse.Neg())
		}
	}
}
