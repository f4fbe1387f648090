// SPDX-License-Identifier: GPL-2.0-or-later

// Package world is an in process implementation of collision.Engine. It
// moves bodies with a fixed step integrator, resolves contacts between
// oriented boxes and reports trigger overlaps. It is good enough to drive
// the portal logic headless; it is not a rigid body solver.
package world

import (
	"log/slog"

	"goportal/collision"
	"goportal/math/vec"
)

type pair struct {
	a, b collision.BodyID
}

func makePair(a, b collision.BodyID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

type body struct {
	id        collision.BodyID
	name      string
	shape     collision.Shape
	pose      vec.Transform
	typ       collision.Channel
	responses collision.Responses
	enabled   collision.Enabled
	simulate  bool
	mass      float32
	trigger   bool
	ccd       bool

	linear  vec.Vec3
	angular vec.Vec3

	node *areaNode
	// overlaps holds the bodies currently inside a trigger.
	overlaps map[collision.BodyID]struct{}

	onHit   []collision.HitHandler
	onBegin []collision.OverlapHandler
	onEnd   []collision.OverlapHandler
}

func (b *body) obb() obb {
	return newOBB(b.shape, b.pose)
}

type Config struct {
	Mins, Maxs vec.Vec3
	Gravity    vec.Vec3
	// Substeps is the number of integration steps per Step.
	Substeps int
	// MaxCCDSteps bounds the additional substeps of continuous collision.
	MaxCCDSteps int
	// MaxStepTravel is the distance a body without continuous collision
	// may move in one substep before it is split further.
	MaxStepTravel float32
	Log           *slog.Logger
}

type World struct {
	cfg    Config
	log    *slog.Logger
	bodies map[collision.BodyID]*body
	next   collision.BodyID
	ignore map[pair]struct{}
	area   *areaNode
}

var _ collision.Engine = (*World)(nil)

func New(cfg Config) *World {
	if cfg.Substeps < 1 {
		cfg.Substeps = 1
	}
	if cfg.MaxCCDSteps < 1 {
		cfg.MaxCCDSteps = 16
	}
	if cfg.MaxStepTravel <= 0 {
		cfg.MaxStepTravel = 40
	}
	l := cfg.Log
	if l == nil {
		l = slog.Default()
	}
	return &World{
		cfg:    cfg,
		log:    l.With("module", "world"),
		bodies: make(map[collision.BodyID]*body),
		ignore: make(map[pair]struct{}),
		area:   createAreaNode(0, cfg.Mins, cfg.Maxs),
	}
}

func (w *World) SetGravity(g vec.Vec3) { w.cfg.Gravity = g }
func (w *World) SetSubsteps(n int) {
	w.cfg.Substeps = max(1, n)
}

func (w *World) get(id collision.BodyID) *body {
	b, ok := w.bodies[id]
	if !ok {
		return nil
	}
	return b
}

func (w *World) relink(b *body) {
	if b.node != nil {
		b.node.unlink(b.id)
	}
	mins, maxs := b.obb().aabb()
	b.node = w.area.link(b.id, mins, maxs)
}

func (w *World) Spawn(d collision.BodyDesc) collision.BodyID {
	w.next++
	b := &body{
		id:        w.next,
		name:      d.Name,
		shape:     d.Shape,
		pose:      d.Pose,
		typ:       d.Type,
		responses: d.Responses,
		enabled:   d.Enabled,
		simulate:  d.Simulate,
		mass:      d.Mass,
		trigger:   d.Trigger,
	}
	if b.mass <= 0 {
		b.mass = 1
	}
	if b.trigger {
		b.overlaps = make(map[collision.BodyID]struct{})
	}
	w.bodies[b.id] = b
	w.relink(b)
	return b.id
}

// Destroy ends all overlaps the body is part of and removes it.
func (w *World) Destroy(id collision.BodyID) {
	b := w.get(id)
	if b == nil {
		return
	}
	if b.trigger {
		b.overlaps = nil
	}
	for _, t := range w.triggersContaining(id) {
		delete(t.overlaps, id)
		w.fire(t.onEnd, t.id, id)
	}
	if b.node != nil {
		b.node.unlink(id)
	}
	delete(w.bodies, id)
	for p := range w.ignore {
		if p.a == id || p.b == id {
			delete(w.ignore, p)
		}
	}
}

func (w *World) triggersContaining(id collision.BodyID) []*body {
	var ret []*body
	for _, t := range w.bodies {
		if _, ok := t.overlaps[id]; ok {
			ret = append(ret, t)
		}
	}
	return ret
}

func (w *World) Valid(id collision.BodyID) bool {
	return w.get(id) != nil
}

func (w *World) Name(id collision.BodyID) string {
	if b := w.get(id); b != nil {
		return b.name
	}
	return ""
}

func (w *World) ObjectType(id collision.BodyID) collision.Channel {
	if b := w.get(id); b != nil {
		return b.typ
	}
	return collision.WorldStatic
}

func (w *World) SetObjectType(id collision.BodyID, c collision.Channel) {
	if b := w.get(id); b != nil {
		b.typ = c
	}
}

func (w *World) Response(id collision.BodyID, c collision.Channel) collision.Response {
	if b := w.get(id); b != nil {
		return b.responses[c]
	}
	return collision.Ignore
}

func (w *World) SetResponse(id collision.BodyID, c collision.Channel, r collision.Response) {
	if b := w.get(id); b != nil {
		b.responses[c] = r
	}
}

func (w *World) Responses(id collision.BodyID) collision.Responses {
	if b := w.get(id); b != nil {
		return b.responses
	}
	return collision.Responses{}
}

func (w *World) SetResponses(id collision.BodyID, rs collision.Responses) {
	if b := w.get(id); b != nil {
		b.responses = rs
	}
}

func (w *World) SetCollisionEnabled(id collision.BodyID, e collision.Enabled) {
	if b := w.get(id); b != nil {
		b.enabled = e
	}
}

func (w *World) IgnoreCollision(a, b collision.BodyID, ignore bool) {
	if a == b {
		return
	}
	p := makePair(a, b)
	if ignore {
		w.ignore[p] = struct{}{}
	} else {
		delete(w.ignore, p)
	}
}

// IsCollisionIgnored reports whether the pair a, b is ignored.
func (w *World) IsCollisionIgnored(a, b collision.BodyID) bool {
	_, ok := w.ignore[makePair(a, b)]
	return ok
}

func (w *World) SetCCD(id collision.BodyID, enabled bool) {
	if b := w.get(id); b != nil {
		b.ccd = enabled
	}
}

func (w *World) CCD(id collision.BodyID) bool {
	if b := w.get(id); b != nil {
		return b.ccd
	}
	return false
}

func (w *World) SetSimulatePhysics(id collision.BodyID, simulate bool) {
	if b := w.get(id); b != nil {
		b.simulate = simulate
		if !simulate {
			b.linear, b.angular = vec.Vec3{}, vec.Vec3{}
		}
	}
}

func (w *World) Pose(id collision.BodyID) vec.Transform {
	if b := w.get(id); b != nil {
		return b.pose
	}
	return vec.IdentityTransform
}

func (w *World) SetPose(id collision.BodyID, t vec.Transform) {
	b := w.get(id)
	if b == nil {
		return
	}
	b.pose = t
	w.relink(b)
	w.updateOverlaps(b)
}

func (w *World) Velocity(id collision.BodyID) (vec.Vec3, vec.Vec3) {
	if b := w.get(id); b != nil {
		return b.linear, b.angular
	}
	return vec.Vec3{}, vec.Vec3{}
}

func (w *World) SetVelocity(id collision.BodyID, linear, angular vec.Vec3) {
	if b := w.get(id); b != nil {
		b.linear, b.angular = linear, angular
	}
}

func (w *World) Mass(id collision.BodyID) float32 {
	if b := w.get(id); b != nil {
		return b.mass
	}
	return 0
}

func (w *World) SetMass(id collision.BodyID, m float32) {
	if b := w.get(id); b != nil && m > 0 {
		b.mass = m
	}
}

func (w *World) Shape(id collision.BodyID) collision.Shape {
	if b := w.get(id); b != nil {
		return b.shape
	}
	return collision.Shape{}
}

func (b *body) inertia() float32 {
	e := b.shape.Bounds()
	return b.mass * max(e.LengthSquared()/3, 1)
}

func (w *World) AddImpulseAtLocation(id collision.BodyID, impulse, location vec.Vec3) {
	b := w.get(id)
	if b == nil || !b.simulate {
		return
	}
	b.linear = vec.Add(b.linear, impulse.Scale(1/b.mass))
	r := vec.Sub(location, b.pose.Translation)
	b.angular = vec.Add(b.angular, vec.Cross(r, impulse).Scale(1/b.inertia()))
}

// AddForceAtLocation applies force for one nominal 60Hz step.
func (w *World) AddForceAtLocation(id collision.BodyID, force, location vec.Vec3) {
	w.AddImpulseAtLocation(id, force.Scale(1.0/60), location)
}

func (w *World) OnHit(id collision.BodyID, h collision.HitHandler) {
	if b := w.get(id); b != nil {
		b.onHit = append(b.onHit, h)
	}
}

func (w *World) OnBeginOverlap(id collision.BodyID, h collision.OverlapHandler) {
	if b := w.get(id); b != nil {
		b.onBegin = append(b.onBegin, h)
	}
}

func (w *World) OnEndOverlap(id collision.BodyID, h collision.OverlapHandler) {
	if b := w.get(id); b != nil {
		b.onEnd = append(b.onEnd, h)
	}
}

func (w *World) fire(hs []collision.OverlapHandler, trigger, other collision.BodyID) {
	for _, h := range hs {
		h(trigger, other)
	}
}

// Overlapping returns the bodies currently inside the trigger.
func (w *World) Overlapping(trigger collision.BodyID) []collision.BodyID {
	b := w.get(trigger)
	if b == nil {
		return nil
	}
	ret := make([]collision.BodyID, 0, len(b.overlaps))
	for id := range b.overlaps {
		ret = append(ret, id)
	}
	return ret
}

func (w *World) ignored(a, b collision.BodyID) bool {
	_, ok := w.ignore[makePair(a, b)]
	return ok
}

// blocks reports whether a and b collide physically.
func (w *World) blocks(a, b *body) bool {
	if a.id == b.id || !a.enabled.Physics() || !b.enabled.Physics() || a.trigger || b.trigger {
		return false
	}
	if w.ignored(a.id, b.id) {
		return false
	}
	return collision.Mutual(a.responses[b.typ], b.responses[a.typ]) == collision.Block
}

// touches reports whether trigger t reports overlaps with o.
func (w *World) touches(t, o *body) bool {
	if t.id == o.id || !o.enabled.Query() || !t.enabled.Query() || o.trigger {
		return false
	}
	if w.ignored(t.id, o.id) {
		return false
	}
	return t.responses[o.typ] != collision.Ignore && o.responses[t.typ] != collision.Ignore
}

// updateOverlaps brings the overlap sets of all triggers near b (or of b if
// it is a trigger) up to date and fires begin and end events.
func (w *World) updateOverlaps(b *body) {
	type event struct {
		trigger, other collision.BodyID
		begin          bool
	}
	var events []event
	check := func(t, o *body) {
		_, was := t.overlaps[o.id]
		_, _, is := penetration(t.obb(), o.obb())
		is = is && w.touches(t, o)
		switch {
		case is && !was:
			t.overlaps[o.id] = struct{}{}
			events = append(events, event{t.id, o.id, true})
		case !is && was:
			delete(t.overlaps, o.id)
			events = append(events, event{t.id, o.id, false})
		}
	}
	mins, maxs := b.obb().aabb()
	near := w.area.query(mins, maxs)
	if b.trigger {
		for _, id := range near {
			if o := w.get(id); o != nil {
				check(b, o)
			}
		}
		for id := range b.overlaps {
			if o := w.get(id); o != nil {
				check(b, o)
			}
		}
	} else {
		seen := make(map[collision.BodyID]bool)
		for _, id := range near {
			if t := w.get(id); t != nil && t.trigger {
				seen[id] = true
				check(t, b)
			}
		}
		for _, t := range w.triggersContaining(b.id) {
			if !seen[t.id] {
				check(t, b)
			}
		}
	}
	for _, e := range events {
		t := w.get(e.trigger)
		if t == nil || !w.Valid(e.other) {
			continue
		}
		if e.begin {
			w.fire(t.onBegin, e.trigger, e.other)
		} else {
			w.fire(t.onEnd, e.trigger, e.other)
		}
	}
}

// UpdateOverlaps re-evaluates the overlaps of id.
func (w *World) UpdateOverlaps(id collision.BodyID) {
	if b := w.get(id); b != nil {
		w.updateOverlaps(b)
	}
}
