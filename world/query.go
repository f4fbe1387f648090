// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"log/slog"
	"slices"

	"goportal/collision"
	"goportal/math/vec"
)

const teleportTolerance = 0.1

func segmentBounds(start, end vec.Vec3, r float32) (vec.Vec3, vec.Vec3) {
	mins, maxs := vec.MinMax(start, end)
	e := vec.Vec3{X: r, Y: r, Z: r}
	return vec.Sub(mins, e), vec.Add(maxs, e)
}

// LineTrace returns the first body blocking the channel c along the segment.
func (w *World) LineTrace(start, end vec.Vec3, c collision.Channel, q collision.QueryParams) (collision.Hit, bool) {
	var best collision.Hit
	found := false
	mins, maxs := segmentBounds(start, end, 0)
	for _, id := range w.area.query(mins, maxs) {
		b := w.get(id)
		if b == nil || !b.enabled.Query() || b.responses[c] != collision.Block || q.Ignores(id) {
			continue
		}
		t, n, ok := raycast(b.obb(), start, end)
		if !ok || (found && t >= best.Time) {
			continue
		}
		found = true
		best = w.makeHit(b, start, end, t, n)
	}
	return best, found
}

func (w *World) makeHit(b *body, start, end vec.Vec3, t float32, n vec.Vec3) collision.Hit {
	d := vec.Sub(end, start)
	return collision.Hit{
		Body:        b.id,
		Type:        b.typ,
		Location:    vec.Lerp(start, end, t),
		Normal:      n,
		Time:        t,
		Distance:    d.Length() * t,
		TraceStart:  start,
		TraceEnd:    end,
		BlockingHit: true,
	}
}

// SweepSphere returns every body touched by a sphere moving along the
// segment that does not ignore c, ordered by distance. Bodies overlapping
// the sphere at start are reported with time 0.
func (w *World) SweepSphere(start, end vec.Vec3, radius float32, c collision.Channel, q collision.QueryParams) []collision.Hit {
	var hits []collision.Hit
	mins, maxs := segmentBounds(start, end, radius)
	for _, id := range w.area.query(mins, maxs) {
		b := w.get(id)
		if b == nil || !b.enabled.Query() || b.responses[c] == collision.Ignore || q.Ignores(id) {
			continue
		}
		o := b.obb().inflate(radius)
		if t, n, ok := raycast(o, start, end); ok {
			h := w.makeHit(b, start, end, t, n)
			h.BlockingHit = b.responses[c] == collision.Block
			hits = append(hits, h)
			continue
		}
		if _, _, ok := raycast(o, end, start); ok || containsPoint(o, start) {
			h := w.makeHit(b, start, end, 0, vec.Sub(start, b.pose.Translation).Normalize())
			h.StartSolid = true
			h.BlockingHit = b.responses[c] == collision.Block
			hits = append(hits, h)
		}
	}
	slices.SortStableFunc(hits, func(a, b collision.Hit) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return hits
}

func containsPoint(o obb, p vec.Vec3) bool {
	d := vec.Sub(p, o.center)
	for i := 0; i < 3; i++ {
		if v := vec.Dot(d, o.axes[i]); v < -o.half.Idx(i) || v > o.half.Idx(i) {
			return false
		}
	}
	return true
}

// Overlap returns all bodies the shape at pose overlaps that do not ignore
// the channel c.
func (w *World) Overlap(s collision.Shape, pose vec.Transform, c collision.Channel, q collision.QueryParams) []collision.OverlapResult {
	var ret []collision.OverlapResult
	shape := newOBB(s, pose)
	mins, maxs := shape.aabb()
	for _, id := range w.area.query(mins, maxs) {
		b := w.get(id)
		if b == nil || !b.enabled.Query() || b.trigger || q.Ignores(id) {
			continue
		}
		r := b.responses[c]
		if r == collision.Ignore {
			continue
		}
		depth, dir, ok := penetration(shape, b.obb())
		if !ok {
			continue
		}
		res := collision.OverlapResult{
			Body:     id,
			Type:     b.typ,
			Response: r,
		}
		if s.Kind != collision.Complex && b.shape.Kind != collision.Complex {
			res.MTD = dir.Scale(depth)
			res.MTDValid = true
		}
		ret = append(ret, res)
	}
	return ret
}

// encroachingAll returns every physics body b would penetrate at pose.
func (w *World) encroachingAll(b *body, pose vec.Transform, q collision.QueryParams) []*body {
	var ret []*body
	shape := newOBB(b.shape, pose)
	mins, maxs := shape.aabb()
	for _, id := range w.area.query(mins, maxs) {
		o := w.get(id)
		if o == nil || q.Ignores(id) || !w.blocks(b, o) {
			continue
		}
		if depth, _, ok := penetration(shape, o.obb()); ok && depth > teleportTolerance {
			ret = append(ret, o)
		}
	}
	return ret
}

func (w *World) encroaching(b *body, pose vec.Transform, q collision.QueryParams) (*body, bool) {
	all := w.encroachingAll(b, pose, q)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

func (w *World) Teleport(id collision.BodyID, t vec.Transform, q collision.QueryParams) bool {
	b := w.get(id)
	if b == nil {
		return false
	}
	if o, blocked := w.encroaching(b, t, q); blocked {
		w.log.Debug("Teleport blocked", slog.String("body", b.name), slog.String("by", o.name))
		return false
	}
	b.pose = t
	w.relink(b)
	w.updateOverlaps(b)
	return true
}

// Move sweeps the body in steps no longer than its smallest half extent and
// stops in front of the first blocking body. Bodies already penetrated at the
// start do not block.
func (w *World) Move(id collision.BodyID, delta vec.Vec3, rot vec.Quat) (collision.Hit, bool) {
	b := w.get(id)
	if b == nil {
		return collision.Hit{}, false
	}
	e := b.shape.Bounds()
	step := max(min(e.X, e.Y, e.Z), 1)
	n := int(delta.Length()/step) + 1
	start := b.pose.Translation
	var q collision.QueryParams
	for _, o := range w.encroachingAll(b, b.pose, q) {
		q.Ignore = append(q.Ignore, o.id)
	}
	var hit collision.Hit
	blocked := false
	for i := 1; i <= n; i++ {
		next := vec.NewTransform(rot, vec.Add(start, delta.Scale(float32(i)/float32(n))))
		if o, ok := w.encroaching(b, next, q); ok {
			hit = w.makeHit(o, start, vec.Add(start, delta), float32(i-1)/float32(n), vec.Vec3{})
			if _, dir, ok := penetration(newOBB(b.shape, next), o.obb()); ok {
				hit.Normal = dir
			}
			blocked = true
			break
		}
		b.pose = next
	}
	w.relink(b)
	w.updateOverlaps(b)
	return hit, blocked
}
