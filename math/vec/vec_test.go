// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"testing"
)

var (
	NULL = Vec3{}
)

func TestBasics(t *testing.T) {
	v := Vec3{1, 2, 3}
	if v.Idx(0) != 1 || v.Idx(1) != 2 || v.Idx(2) != 3 {
		t.Errorf("Vector construction is not obvious")
	}
	v.SetIdx(1, 7)
	if v.Y != 7 {
		t.Errorf("SetIdx(1,7) = %v", v)
	}
}

func TestLength(t *testing.T) {
	if NULL.Length() != 0 {
		t.Errorf("Null vector has not 0 length")
	}
	for _, v := range []Vec3{{2, 2, 1}, {2, 1, 2}, {1, 2, 2}} {
		if v.Length() != 3 {
			t.Errorf("%v Length is not 3", v)
		}
	}
}

func TestAdd(t *testing.T) {
	v := Vec3{1, 2, 3}
	got := Add(NULL, v)
	if v != got {
		t.Errorf("Adding a null vector changed the vector")
	}
	got = Add(v, v)
	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("Add(%v,%v) = %v want %v", v, v, got, want)
	}
}

func TestSub(t *testing.T) {
	v := Vec3{1, 2, 3}
	got := Sub(v, v)
	if got != NULL {
		t.Errorf("Sub(%v,%v) = %v want %v", v, v, got, NULL)
	}
	v2 := Vec3{9, 7, 5}
	got = Sub(v2, v)
	want := Vec3{8, 5, 2}
	if got != want {
		t.Errorf("Sub(%v,%v) = %v want %v", v2, v, got, want)
	}
}

func TestScale(t *testing.T) {
	v := Vec3{1, 2, 3}
	got := v.Scale(2)
	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("%v.Scale(2) = %v want %v", v, got, want)
	}
}

func TestNormalize(t *testing.T) {
	v := Vec3{0, 3, 4}
	got := v.Normalize()
	if !NearlyEqual(got, Vec3{0, 0.6, 0.8}, 1e-6) {
		t.Errorf("%v.Normalize() = %v", v, got)
	}
	if NULL.Normalize() != NULL {
		t.Errorf("Normalize of the null vector is not null")
	}
}

func TestDot(t *testing.T) {
	if got := Dot(Vec3{1, 2, 3}, Vec3{4, -5, 6}); got != 12 {
		t.Errorf("Dot = %v want 12", got)
	}
}

func TestCross(t *testing.T) {
	if got := Cross(Forward, Right); got != Up {
		t.Errorf("Cross(Forward, Right) = %v want %v", got, Up)
	}
}

func TestClampLength(t *testing.T) {
	v := Vec3{0, 30, 40}
	if got := v.ClampLength(5); !NearlyEqual(got, Vec3{0, 3, 4}, 1e-5) {
		t.Errorf("ClampLength(5) = %v", got)
	}
	if got := v.ClampLength(100); got != v {
		t.Errorf("ClampLength(100) = %v", got)
	}
}

func TestEqual(t *testing.T) {
	v1 := Vec3{2, 3, 4}
	v2 := Vec3{4, 3, 2}
	if !Equal(v1, v1) {
		t.Errorf("Vectors are not considered equal to them self")
	}
	if Equal(v1, v2) {
		t.Errorf("Vectors %v and %v are considered equal", v1, v2)
	}
}
