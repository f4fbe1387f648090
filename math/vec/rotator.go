// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"github.com/chewxy/math32"

	"goportal/math"
)

// Rotator holds euler angles in degrees. Yaw turns around Z, a positive
// Pitch raises the nose and Roll turns around the forward axis.
type Rotator struct {
	Pitch, Yaw, Roll float32
}

func (r Rotator) Quat() Quat {
	yaw := AxisAngle(Up, r.Yaw*math.DegToRad)
	pitch := AxisAngle(Right, -r.Pitch*math.DegToRad)
	roll := AxisAngle(Forward, -r.Roll*math.DegToRad)
	return MulQ(yaw, MulQ(pitch, roll))
}

func (r Rotator) Forward() Vec3 {
	sp, cp := math32.Sincos(r.Pitch * math.DegToRad)
	sy, cy := math32.Sincos(r.Yaw * math.DegToRad)
	return Vec3{cp * cy, cp * sy, sp}
}

// YawOnly drops pitch and roll.
func (r Rotator) YawOnly() Rotator {
	return Rotator{Yaw: r.Yaw}
}

// ToRotator converts q into euler angles.
func (q Quat) ToRotator() Rotator {
	singularity := q.Z*q.X - q.W*q.Y
	yawY := 2 * (q.W*q.Z + q.X*q.Y)
	yawX := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	const threshold = 0.4999995

	var r Rotator
	r.Yaw = math32.Atan2(yawY, yawX) * math.RadToDeg
	switch {
	case singularity < -threshold:
		r.Pitch = -90
		r.Roll = math.NormalizeAxis(-r.Yaw - 2*math32.Atan2(q.X, q.W)*math.RadToDeg)
	case singularity > threshold:
		r.Pitch = 90
		r.Roll = math.NormalizeAxis(r.Yaw - 2*math32.Atan2(q.X, q.W)*math.RadToDeg)
	default:
		r.Pitch = math32.Asin(2*singularity) * math.RadToDeg
		r.Roll = math32.Atan2(-2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y)) * math.RadToDeg
	}
	return r
}

// LookRotation returns the rotation whose forward axis points along dir and
// which has no roll.
func LookRotation(dir Vec3) Quat {
	d := dir.Normalize()
	if d == Zero {
		return Identity
	}
	yaw := math32.Atan2(d.Y, d.X) * math.RadToDeg
	pitch := math32.Asin(math.Clamp(-1, d.Z, 1)) * math.RadToDeg
	return Rotator{Pitch: pitch, Yaw: yaw}.Quat()
}
