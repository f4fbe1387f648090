// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"testing"
)

const tolerance = 1e-4

func TestRotatorAxes(t *testing.T) {
	for _, tc := range []struct {
		r    Rotator
		want Vec3
	}{
		{Rotator{}, Forward},
		{Rotator{Yaw: 90}, Right},
		{Rotator{Yaw: 180}, Forward.Neg()},
		{Rotator{Pitch: 90}, Up},
		{Rotator{Pitch: 30, Yaw: 60}, Rotator{Pitch: 30, Yaw: 60}.Forward()},
	} {
		got := tc.r.Quat().Forward()
		if !NearlyEqual(got, tc.want, tolerance) {
			t.Errorf("%v.Quat().Forward() = %v want %v", tc.r, got, tc.want)
		}
	}
}

func TestRotatorRoundTrip(t *testing.T) {
	for _, r := range []Rotator{
		{},
		{Yaw: 45},
		{Pitch: 30, Yaw: -120},
		{Pitch: -10, Yaw: 170, Roll: 20},
	} {
		got := r.Quat().ToRotator()
		if !NearlyEqualQ(got.Quat(), r.Quat(), tolerance) {
			t.Errorf("%v.Quat().ToRotator() = %v", r, got)
		}
	}
}

func TestTransformInverse(t *testing.T) {
	tr := NewTransform(Rotator{Pitch: 10, Yaw: 75, Roll: -5}.Quat(), Vec3{10, -20, 30})
	p := Vec3{3, 4, 5}
	got := tr.InverseTransformPosition(tr.TransformPosition(p))
	if !NearlyEqual(got, p, tolerance) {
		t.Errorf("InverseTransformPosition(TransformPosition(%v)) = %v", p, got)
	}
	got = tr.Inverse().TransformPosition(tr.TransformPosition(p))
	if !NearlyEqual(got, p, tolerance) {
		t.Errorf("Inverse().TransformPosition(TransformPosition(%v)) = %v", p, got)
	}
}

func TestComposeRelativeTo(t *testing.T) {
	parent := NewTransform(Rotator{Yaw: 90}.Quat(), Vec3{100, 0, 0})
	child := NewTransform(Rotator{Yaw: 10}.Quat(), Vec3{10, 0, 0})
	world := Compose(child, parent)
	if !NearlyEqual(world.Translation, Vec3{100, 10, 0}, tolerance) {
		t.Errorf("Compose translation = %v", world.Translation)
	}
	back := world.RelativeTo(parent)
	if !NearlyEqualTransform(back, child, tolerance) {
		t.Errorf("RelativeTo = %v want %v", back, child)
	}
}

func TestSlerp(t *testing.T) {
	a := Identity
	b := Rotator{Yaw: 90}.Quat()
	got := Slerp(a, b, 0.5)
	want := Rotator{Yaw: 45}.Quat()
	if !NearlyEqualQ(got, want, tolerance) {
		t.Errorf("Slerp = %v want %v", got, want)
	}
	if d := AngularDistance(a, b); d < 1.5707 || d > 1.5709 {
		t.Errorf("AngularDistance = %v", d)
	}
}

func TestLookRotation(t *testing.T) {
	dir := Vec3{1, 1, 0}
	got := LookRotation(dir).Forward()
	if !NearlyEqual(got, dir.Normalize(), tolerance) {
		t.Errorf("LookRotation(%v).Forward() = %v", dir, got)
	}
}
