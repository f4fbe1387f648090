// SPDX-License-Identifier: GPL-2.0-or-later

// Package collision describes the contract between the portal logic and a
// physics engine. The portal code only issues directives through Engine and
// consumes the results it reports.
package collision

import (
	"goportal/math/vec"
)

// BodyID names a body inside an Engine. The zero value is never valid.
type BodyID uint32

const NoBody BodyID = 0

type ShapeKind uint8

const (
	Box ShapeKind = iota
	Capsule
	// Complex shapes can be queried but never produce a valid minimum
	// translation distance.
	Complex
)

type Shape struct {
	Kind ShapeKind
	// Extent holds the half size of a box or complex shape.
	Extent     vec.Vec3
	Radius     float32
	HalfHeight float32
}

func BoxShape(extent vec.Vec3) Shape {
	return Shape{Kind: Box, Extent: extent}
}

func CapsuleShape(radius, halfHeight float32) Shape {
	return Shape{Kind: Capsule, Radius: radius, HalfHeight: halfHeight}
}

// Bounds returns the half extent of the box enclosing the shape in local
// space.
func (s Shape) Bounds() vec.Vec3 {
	if s.Kind == Capsule {
		return vec.Vec3{X: s.Radius, Y: s.Radius, Z: max(s.HalfHeight, s.Radius)}
	}
	return s.Extent
}

type Hit struct {
	Body BodyID
	// Type is the object type of Body at the time of the hit.
	Type     Channel
	Location vec.Vec3
	Normal   vec.Vec3
	// Time is the fraction of the trace at which the hit occurred.
	Time        float32
	Distance    float32
	TraceStart  vec.Vec3
	TraceEnd    vec.Vec3
	StartSolid  bool
	BlockingHit bool
}

type OverlapResult struct {
	Body BodyID
	Type Channel
	// Response is the response of Body to the query channel.
	Response Response
	// MTD is the minimum translation that moves the query shape out of Body.
	MTD      vec.Vec3
	MTDValid bool
}

type QueryParams struct {
	Ignore []BodyID
}

func (q QueryParams) Ignores(b BodyID) bool {
	for _, i := range q.Ignore {
		if i == b {
			return true
		}
	}
	return false
}

// BodyDesc describes a body to spawn.
type BodyDesc struct {
	Name      string
	Shape     Shape
	Pose      vec.Transform
	Type      Channel
	Responses Responses
	Enabled   Enabled
	// Simulate makes the body dynamic. Non simulated bodies are moved only
	// through SetPose, Teleport and Move.
	Simulate bool
	Mass     float32
	// Trigger bodies report overlap begin and end events.
	Trigger bool
}

// HitHandler is called when a body is hit by a simulated body. Impulse is the
// impulse the contact applied to self.
type HitHandler func(self, other BodyID, hit Hit, impulse vec.Vec3)

// OverlapHandler is called on overlap begin and end of trigger bodies.
type OverlapHandler func(trigger, other BodyID)

// Engine is the physics and spatial query service.
type Engine interface {
	Spawn(d BodyDesc) BodyID
	Destroy(b BodyID)
	Valid(b BodyID) bool

	ObjectType(b BodyID) Channel
	SetObjectType(b BodyID, c Channel)
	Response(b BodyID, c Channel) Response
	SetResponse(b BodyID, c Channel, r Response)
	Responses(b BodyID) Responses
	SetResponses(b BodyID, rs Responses)
	SetCollisionEnabled(b BodyID, e Enabled)
	// IgnoreCollision toggles an ignore pair. Ignored pairs neither collide
	// nor show up in each others queries.
	IgnoreCollision(a, b BodyID, ignore bool)
	SetCCD(b BodyID, enabled bool)
	SetSimulatePhysics(b BodyID, simulate bool)

	Pose(b BodyID) vec.Transform
	// SetPose moves a body without any checks.
	SetPose(b BodyID, t vec.Transform)
	// Teleport moves a body atomically. It fails when the destination is
	// blocked by geometry that is not ignored.
	Teleport(b BodyID, t vec.Transform, q QueryParams) bool
	// Move sweeps a body by delta and stops at the first blocking hit.
	Move(b BodyID, delta vec.Vec3, rot vec.Quat) (Hit, bool)
	Velocity(b BodyID) (linear, angular vec.Vec3)
	SetVelocity(b BodyID, linear, angular vec.Vec3)
	Mass(b BodyID) float32
	SetMass(b BodyID, m float32)
	Shape(b BodyID) Shape
	AddImpulseAtLocation(b BodyID, impulse, location vec.Vec3)
	AddForceAtLocation(b BodyID, force, location vec.Vec3)

	LineTrace(start, end vec.Vec3, c Channel, q QueryParams) (Hit, bool)
	SweepSphere(start, end vec.Vec3, radius float32, c Channel, q QueryParams) []Hit
	Overlap(s Shape, pose vec.Transform, c Channel, q QueryParams) []OverlapResult

	// UpdateOverlaps re-evaluates trigger overlaps involving b and fires the
	// pending begin and end events.
	UpdateOverlaps(b BodyID)
	OnHit(b BodyID, h HitHandler)
	OnBeginOverlap(b BodyID, h OverlapHandler)
	OnEndOverlap(b BodyID, h OverlapHandler)
}
