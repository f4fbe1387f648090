// SPDX-License-Identifier: GPL-2.0-or-later

// Package grab lets a holder carry objects, also through portals.
package grab

import (
	"log/slog"

	"github.com/google/uuid"

	"goportal/collision"
	"goportal/math/vec"
	"goportal/portal"
)

// Grabbable is implemented by everything a device can hold.
type Grabbable interface {
	Handle() uuid.UUID
	Name() string
	CollisionBody() collision.BodyID
	Transform() vec.Transform
	OnGrabbed(ctx *portal.Context)
	OnReleased(ctx *portal.Context)
	// OnGrabbableMoved is called after a device moved the object with the
	// speed of that move.
	OnGrabbableMoved(ctx *portal.Context, speed float32)
}

// Holder is whoever owns a grab device.
type Holder interface {
	Handle() uuid.UUID
	CollisionBody() collision.BodyID
	ViewTransform() vec.Transform
}

// Device is the state shared by all grab devices.
type Device struct {
	ctx     *portal.Context
	holder  Holder
	grabbed Grabbable

	OnGrab    func(g Grabbable)
	OnRelease func(g Grabbable)
}

func (d *Device) Holder() Holder     { return d.holder }
func (d *Device) Grabbed() Grabbable { return d.grabbed }
func (d *Device) IsGrabbing() bool   { return d.grabbed != nil }

// grab takes g. It fails if something is held already.
func (d *Device) grab(g Grabbable) bool {
	if d.grabbed != nil || g == nil {
		return false
	}
	d.grabbed = g
	g.OnGrabbed(d.ctx)
	d.ctx.Log.Debug("grabbed", slog.String("object", g.Name()))
	if d.OnGrab != nil {
		d.OnGrab(g)
	}
	return true
}

// release lets go of the held object.
func (d *Device) release() {
	g := d.grabbed
	if g == nil {
		return
	}
	d.grabbed = nil
	g.OnReleased(d.ctx)
	d.ctx.Log.Debug("released", slog.String("object", g.Name()))
	if d.OnRelease != nil {
		d.OnRelease(g)
	}
}

func grabbableAt(ctx *portal.Context, b collision.BodyID) (Grabbable, bool) {
	a, ok := ctx.Actors.Actor(b)
	if !ok {
		return nil, false
	}
	g, ok := a.(Grabbable)
	return g, ok
}
