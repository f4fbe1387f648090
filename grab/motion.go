// SPDX-License-Identifier: GPL-2.0-or-later

package grab

import (
	"goportal/collision"
	"goportal/cvars"
	"goportal/math/vec"
	"goportal/portal"
)

// MotionControllerDevice grabs whatever is next to a tracked hand. It does
// not follow objects through portals.
type MotionControllerDevice struct {
	Device
	// Hand is the pose of the controller relative to the view of the holder.
	Hand vec.Transform
	// attach is the pose of the object relative to the controller.
	attach vec.Transform
}

func NewMotionControllerDevice(ctx *portal.Context, h Holder, hand vec.Transform) *MotionControllerDevice {
	return &MotionControllerDevice{
		Device: Device{ctx: ctx, holder: h},
		Hand:   hand,
	}
}

// Controller returns the world pose of the controller.
func (d *MotionControllerDevice) Controller() vec.Transform {
	return vec.Compose(d.Hand, d.holder.ViewTransform())
}

// TryGrabbing grabs the closest grabbable within grab_sphereradius of the
// controller.
func (d *MotionControllerDevice) TryGrabbing() bool {
	if d.grabbed != nil {
		return false
	}
	c := d.Controller()
	hits := d.ctx.Engine.SweepSphere(c.Translation, c.Translation, cvars.GrabSphereRadius.Value(),
		collision.PhysicsBody, collision.QueryParams{Ignore: []collision.BodyID{d.holder.CollisionBody()}})
	var best Grabbable
	var bestDist float32
	for _, h := range hits {
		g, ok := grabbableAt(d.ctx, h.Body)
		if !ok {
			continue
		}
		dist := vec.Distance(c.Translation, g.Transform().Translation)
		if best == nil || dist < bestDist {
			best, bestDist = g, dist
		}
	}
	if best == nil || !d.grab(best) {
		return false
	}
	d.attach = best.Transform().RelativeTo(c)
	return true
}

func (d *MotionControllerDevice) Release() {
	d.release()
}

// Tick moves the held object along with the controller.
func (d *MotionControllerDevice) Tick(dt float32) {
	g := d.grabbed
	if g == nil {
		return
	}
	want := vec.Compose(d.attach, d.Controller())
	cur := g.Transform()
	delta := vec.Sub(want.Translation, cur.Translation)
	d.ctx.Engine.Move(g.CollisionBody(), delta, want.Rotation)
	d.ctx.Engine.SetVelocity(g.CollisionBody(), vec.Vec3{}, vec.Vec3{})
	var speed float32
	if dt > 0 {
		speed = vec.Distance(g.Transform().Translation, cur.Translation) / dt
	}
	g.OnGrabbableMoved(d.ctx, speed)
}
