// SPDX-License-Identifier: GPL-2.0-or-later

package math

const (
	// SmallNumber is the tolerance used for near zero comparisons of
	// world space quantities.
	SmallNumber = 1e-4
	KindaSmall  = 1e-2
)

func Abs[K Number](v K) K {
	if v < 0 {
		return -v
	}
	return v
}

// NearlyEqual reports whether a and b differ by at most tolerance.
func NearlyEqual(a, b, tolerance float32) bool {
	return Abs(a-b) <= tolerance
}
