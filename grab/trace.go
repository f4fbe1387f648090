// SPDX-License-Identifier: GPL-2.0-or-later

package grab

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"goportal/collision"
	"goportal/cvars"
	"goportal/math"
	"goportal/math/vec"
	"goportal/portal"
)

// TraceDevice grabs what the holder looks at and keeps it in front of the
// holder. It tracks the portals between holder and object in sequence,
// front nearest the holder.
type TraceDevice struct {
	Device
	sequence []uuid.UUID
	// rotation is the object rotation relative to the holder yaw, taken
	// when grabbing.
	rotation    vec.Quat
	lostSight   float32
	unsubscribe func()
}

func NewTraceDevice(ctx *portal.Context, h Holder) *TraceDevice {
	d := &TraceDevice{
		Device:   Device{ctx: ctx, holder: h},
		rotation: vec.Identity,
	}
	d.unsubscribe = ctx.Bus.Subscribe(d.onTeleported)
	return d
}

// Close detaches the device from the teleport bus.
func (d *TraceDevice) Close() {
	d.Release()
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// Sequence returns the handles of the portals between holder and object.
func (d *TraceDevice) Sequence() []uuid.UUID {
	return slices.Clone(d.sequence)
}

func (d *TraceDevice) holderYaw() vec.Quat {
	return vec.Rotator{Yaw: d.holder.ViewTransform().Rotation.ToRotator().Yaw}.Quat()
}

// TryGrabbing traces along the view of the holder, through portals, and
// grabs the first grabbable within grab_range.
func (d *TraceDevice) TryGrabbing() bool {
	if d.grabbed != nil {
		return false
	}
	view := d.holder.ViewTransform()
	end := vec.Add(view.Translation, view.Forward().Scale(cvars.GrabRange.Value()))
	res := portal.LineTraceThroughPortals(d.ctx, view.Translation, end, collision.PhysicsBody,
		collision.QueryParams{Ignore: []collision.BodyID{d.holder.CollisionBody()}})
	if !res.Found {
		return false
	}
	g, ok := grabbableAt(d.ctx, res.Hit.Body)
	if !ok {
		return false
	}
	return d.Grab(g, res.Portals)
}

// Grab takes g which is seen through the given portals.
func (d *TraceDevice) Grab(g Grabbable, through []uuid.UUID) bool {
	if !d.grab(g) {
		return false
	}
	d.sequence = slices.Clone(through)
	d.lostSight = 0
	rot := g.Transform().Rotation
	for i := len(d.sequence) - 1; i >= 0; i-- {
		if p, ok := d.ctx.Registry.Portal(d.sequence[i]); ok {
			rot = p.InverseTeleportRotation(rot)
		}
	}
	d.rotation = vec.MulQ(d.holderYaw().Inverse(), rot)
	return true
}

// Release lets go of the object and forgets the portal sequence.
func (d *TraceDevice) Release() {
	d.release()
	d.sequence = nil
	d.lostSight = 0
}

// DesiredLocation is the hold point in front of the holder carried through
// the portal sequence.
func (d *TraceDevice) DesiredLocation() vec.Vec3 {
	view := d.holder.ViewTransform()
	loc := view.TransformPosition(vec.Vec3{X: cvars.GrabHoldOffset.Value()})
	loc, _ = portal.TransformPositionThroughPortals(d.ctx, loc, d.sequence)
	return loc
}

// DesiredRotation keeps the rotation the object had relative to the
// facing of the holder, carried through the portal sequence.
func (d *TraceDevice) DesiredRotation() vec.Quat {
	rot := vec.MulQ(d.holderYaw(), d.rotation)
	rot, _ = portal.TransformRotationThroughPortals(d.ctx, rot, d.sequence)
	return rot
}

// onTeleported keeps the sequence in step with crossings of the object and
// of the holder.
func (d *TraceDevice) onTeleported(e portal.TeleportEvent) {
	if d.grabbed == nil {
		return
	}
	switch e.Actor.Handle() {
	case d.grabbed.Handle():
		if n := len(d.sequence); n > 0 && d.sequence[n-1] == e.Target {
			d.sequence = d.sequence[:n-1]
		} else {
			d.sequence = append(d.sequence, e.Source)
		}
	case d.holder.Handle():
		if len(d.sequence) > 0 && d.sequence[0] == e.Source {
			d.sequence = d.sequence[1:]
		} else {
			d.sequence = slices.Insert(d.sequence, 0, e.Target)
		}
	}
}

// InSight reports whether the holder still sees the object along the
// portal sequence, faces it and is close enough.
func (d *TraceDevice) InSight() bool {
	if d.grabbed == nil {
		return false
	}
	ctx := d.ctx
	n := len(d.sequence)
	portals := make([]*portal.Portal, n)
	for i, h := range d.sequence {
		p, ok := ctx.Registry.Portal(h)
		if !ok || p.Connected() == nil {
			ctx.Log.Error("held through stale portal", slog.String("portal", h.String()))
			return false
		}
		portals[i] = p
	}

	// points[k] is the object seen after k crossings.
	points := make([]vec.Vec3, n+1)
	points[n] = d.grabbed.Transform().Translation
	for k := n; k > 0; k-- {
		points[k-1] = portals[k-1].Connected().TeleportLocation(points[k])
	}

	view := d.holder.ViewTransform()
	facing := vec.Dot(view.Forward(), vec.Sub(points[0], view.Translation).Normalize())
	if facing < cvars.GrabMinFacing.Value() {
		return false
	}

	ignore := []collision.BodyID{d.holder.CollisionBody(), d.grabbed.CollisionBody()}
	start := view.Translation
	var distance float32
	for k := 0; k < n; k++ {
		hit, ok := ctx.Engine.LineTrace(start, points[k], collision.GrabObstruction, collision.QueryParams{Ignore: ignore})
		if !ok || hit.Body != portals[k].Body() {
			return false
		}
		distance += hit.Distance
		start = portals[k].TeleportLocation(hit.Location)
		c := portals[k].Connected()
		ignore = append(ignore, c.Body())
		ignore = append(ignore, c.Surface().CollisionBodies()...)
	}
	if _, blocked := ctx.Engine.LineTrace(start, points[n], collision.GrabObstruction, collision.QueryParams{Ignore: ignore}); blocked {
		return false
	}
	distance += vec.Distance(start, points[n])
	return distance <= cvars.GrabMaxDistance.Value()
}

// Tick releases the object after it was out of sight for
// grab_releasedelay seconds and otherwise moves it toward the hold point.
func (d *TraceDevice) Tick(dt float32) {
	if d.grabbed == nil {
		return
	}
	if !d.InSight() {
		d.lostSight += dt
		if d.lostSight >= cvars.GrabReleaseDelay.Value() {
			d.ctx.Log.Debug("object out of sight", slog.String("object", d.grabbed.Name()))
			d.Release()
			return
		}
	} else {
		d.lostSight = 0
	}
	d.move(dt)
}

func (d *TraceDevice) move(dt float32) {
	g := d.grabbed
	ctx := d.ctx
	cur := g.Transform()
	delta := vec.Sub(d.DesiredLocation(), cur.Translation).ClampLength(cvars.GrabMaxSpeed.Value() * dt)

	target := d.DesiredRotation()
	rot := target
	if angle := vec.AngularDistance(cur.Rotation, target); angle > 0 {
		maxAngle := cvars.GrabMaxAngularSpeed.Value() * dt * math.DegToRad
		rot = vec.Slerp(cur.Rotation, target, min(1, maxAngle/angle))
	}

	ctx.Engine.Move(g.CollisionBody(), delta, rot)
	ctx.Engine.SetVelocity(g.CollisionBody(), vec.Vec3{}, vec.Vec3{})
	moved := vec.Distance(g.Transform().Translation, cur.Translation)
	var speed float32
	if dt > 0 {
		speed = moved / dt
	}
	g.OnGrabbableMoved(ctx, speed)
}
