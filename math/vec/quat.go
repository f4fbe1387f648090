// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"github.com/chewxy/math32"
)

// Quat is a unit quaternion describing a rotation.
type Quat struct {
	X, Y, Z, W float32
}

var Identity = Quat{0, 0, 0, 1}

// AxisAngle returns the rotation of angle radians around the normalized axis.
func AxisAngle(axis Vec3, angle float32) Quat {
	s, c := math32.Sincos(angle / 2)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// MulQ returns a*b, the rotation b followed by a.
func MulQ(a, b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// Inverse returns the inverse of a unit quaternion.
func (q Quat) Inverse() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l == 0 {
		return Identity
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Rotate returns v rotated by q.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := Cross(u, v).Scale(2)
	return Add(Add(v, t.Scale(q.W)), Cross(u, t))
}

// Unrotate returns v rotated by the inverse of q.
func (q Quat) Unrotate(v Vec3) Vec3 {
	return q.Inverse().Rotate(v)
}

func (q Quat) Forward() Vec3 { return q.Rotate(Forward) }
func (q Quat) Right() Vec3   { return q.Rotate(Right) }
func (q Quat) Up() Vec3      { return q.Rotate(Up) }

func dotQ(a, b Quat) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// AngularDistance returns the angle in radians needed to rotate a into b.
func AngularDistance(a, b Quat) float32 {
	d := math32.Abs(dotQ(a, b))
	if d >= 1 {
		return 0
	}
	return 2 * math32.Acos(d)
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b Quat, t float32) Quat {
	d := dotQ(a, b)
	if d < 0 {
		b = Quat{-b.X, -b.Y, -b.Z, -b.W}
		d = -d
	}
	var s0, s1 float32
	if d > 0.9999 {
		s0, s1 = 1-t, t
	} else {
		omega := math32.Acos(d)
		inv := 1 / math32.Sin(omega)
		s0 = math32.Sin((1-t)*omega) * inv
		s1 = math32.Sin(t*omega) * inv
	}
	return Quat{
		s0*a.X + s1*b.X,
		s0*a.Y + s1*b.Y,
		s0*a.Z + s1*b.Z,
		s0*a.W + s1*b.W,
	}.Normalize()
}

// NearlyEqualQ reports whether a and b describe the same rotation.
func NearlyEqualQ(a, b Quat, tolerance float32) bool {
	return 1-math32.Abs(dotQ(a, b)) <= tolerance
}
