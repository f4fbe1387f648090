// SPDX-License-Identifier: GPL-2.0-or-later

package vec

// Transform is a rigid transform without scale.
type Transform struct {
	Rotation    Quat
	Translation Vec3
}

var IdentityTransform = Transform{Rotation: Identity}

func NewTransform(rot Quat, pos Vec3) Transform {
	return Transform{Rotation: rot, Translation: pos}
}

// TransformPosition maps a point from local into world space.
func (t Transform) TransformPosition(p Vec3) Vec3 {
	return Add(t.Rotation.Rotate(p), t.Translation)
}

// InverseTransformPosition maps a world point into local space.
func (t Transform) InverseTransformPosition(p Vec3) Vec3 {
	return t.Rotation.Unrotate(Sub(p, t.Translation))
}

// TransformVector maps a direction from local into world space.
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.Rotation.Rotate(v)
}

func (t Transform) InverseTransformVector(v Vec3) Vec3 {
	return t.Rotation.Unrotate(v)
}

func (t Transform) TransformRotation(q Quat) Quat {
	return MulQ(t.Rotation, q)
}

func (t Transform) InverseTransformRotation(q Quat) Quat {
	return MulQ(t.Rotation.Inverse(), q)
}

func (t Transform) Inverse() Transform {
	inv := t.Rotation.Inverse()
	return Transform{
		Rotation:    inv,
		Translation: inv.Rotate(t.Translation.Neg()),
	}
}

// Compose returns the world transform of child which is given relative to
// parent.
func Compose(child, parent Transform) Transform {
	return Transform{
		Rotation:    MulQ(parent.Rotation, child.Rotation),
		Translation: parent.TransformPosition(child.Translation),
	}
}

// RelativeTo expresses t in the local space of other.
func (t Transform) RelativeTo(other Transform) Transform {
	return Transform{
		Rotation:    other.InverseTransformRotation(t.Rotation),
		Translation: other.InverseTransformPosition(t.Translation),
	}
}

func (t Transform) Forward() Vec3 { return t.Rotation.Forward() }
func (t Transform) Right() Vec3   { return t.Rotation.Right() }
func (t Transform) Up() Vec3      { return t.Rotation.Up() }

func NearlyEqualTransform(a, b Transform, tolerance float32) bool {
	return NearlyEqual(a.Translation, b.Translation, tolerance) &&
		NearlyEqualQ(a.Rotation, b.Rotation, tolerance)
}
