package common

import (
	"math"
)

// Clamp01 clamps v to the [0, 1] range.
//
// Parameters:
//   - v: the value to clamp
//
// Returns:
//   - float32: v limited to [0, 1]
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp limits v to the [lo, hi] range.
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - t: interpolation factor
//
// Returns:
//   - float32: a + (b-a)*t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Lerp3 linearly interpolates each component of two vectors.
//
// Parameters:
//   - a: start vector
//   - b: end vector
//   - t: interpolation factor
//
// Returns:
//   - [3]float32: the interpolated vector
func Lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// Add3 returns a + b.
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Mul3 multiplies two vectors component-wise.
func Mul3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// DistanceSq3 returns the squared distance between two points.
// Prefer this over Distance3 for comparisons.
//
// Parameters:
//   - a: first point
//   - b: second point
//
// Returns:
//   - float32: squared euclidean distance
func DistanceSq3(a, b [3]float32) float32 {
	d := Sub3(a, b)
	return d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
}

// Distance3 returns the euclidean distance between two points.
func Distance3(a, b [3]float32) float32 {
	return float32(math.Sqrt(float64(DistanceSq3(a, b))))
}

// QuatIdentity returns the identity quaternion (x, y, z, w).
func QuatIdentity() [4]float32 {
	return [4]float32{0, 0, 0, 1}
}

// QuatNormalize returns q scaled to unit length. A zero quaternion yields the identity.
//
// Parameters:
//   - q: quaternion (x, y, z, w)
//
// Returns:
//   - [4]float32: the normalized quaternion
func QuatNormalize(q [4]float32) [4]float32 {
	l := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if l == 0 {
		return QuatIdentity()
	}
	inv := 1 / l
	return [4]float32{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// QuatMul returns the Hamilton product a * b. Applying the result rotates by b first, then a.
//
// Parameters:
//   - a: left-hand quaternion
//   - b: right-hand quaternion
//
// Returns:
//   - [4]float32: the product quaternion
func QuatMul(a, b [4]float32) [4]float32 {
	return [4]float32{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

// QuatConjugate returns the conjugate of q, which is its inverse for unit quaternions.
func QuatConjugate(q [4]float32) [4]float32 {
	return [4]float32{-q[0], -q[1], -q[2], q[3]}
}

// QuatRotate rotates vector v by the unit quaternion q.
//
// Parameters:
//   - q: unit quaternion (x, y, z, w)
//   - v: vector to rotate
//
// Returns:
//   - [3]float32: the rotated vector
func QuatRotate(q [4]float32, v [3]float32) [3]float32 {
	// t = 2 * cross(q.xyz, v); v' = v + w*t + cross(q.xyz, t)
	tx := 2 * (q[1]*v[2] - q[2]*v[1])
	ty := 2 * (q[2]*v[0] - q[0]*v[2])
	tz := 2 * (q[0]*v[1] - q[1]*v[0])
	return [3]float32{
		v[0] + q[3]*tx + (q[1]*tz - q[2]*ty),
		v[1] + q[3]*ty + (q[2]*tx - q[0]*tz),
		v[2] + q[3]*tz + (q[0]*ty - q[1]*tx),
	}
}

// QuatFromAxisAngle builds a unit quaternion rotating by angle radians around axis.
//
// Parameters:
//   - axis: rotation axis (normalized internally)
//   - angle: rotation angle in radians
//
// Returns:
//   - [4]float32: the rotation quaternion
func QuatFromAxisAngle(axis [3]float32, angle float32) [4]float32 {
	l := float32(math.Sqrt(float64(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])))
	if l == 0 {
		return QuatIdentity()
	}
	s := float32(math.Sin(float64(angle)/2)) / l
	c := float32(math.Cos(float64(angle) / 2))
	return [4]float32{axis[0] * s, axis[1] * s, axis[2] * s, c}
}

// Slerp spherically interpolates between two unit quaternions along the shortest arc.
// Falls back to normalized linear interpolation when the inputs are nearly parallel.
//
// Parameters:
//   - a: start rotation
//   - b: end rotation
//   - t: interpolation factor in [0, 1]
//
// Returns:
//   - [4]float32: the interpolated unit quaternion
func Slerp(a, b [4]float32, t float32) [4]float32 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
	if dot < 0 {
		b = [4]float32{-b[0], -b[1], -b[2], -b[3]}
		dot = -dot
	}

	if dot > 0.9995 {
		return QuatNormalize([4]float32{
			a[0] + (b[0]-a[0])*t,
			a[1] + (b[1]-a[1])*t,
			a[2] + (b[2]-a[2])*t,
			a[3] + (b[3]-a[3])*t,
		})
	}

	theta0 := math.Acos(float64(dot))
	theta := theta0 * float64(t)
	sinTheta0 := math.Sin(theta0)
	s0 := float32(math.Cos(theta) - float64(dot)*math.Sin(theta)/sinTheta0)
	s1 := float32(math.Sin(theta) / sinTheta0)
	return [4]float32{
		a[0]*s0 + b[0]*s1,
		a[1]*s0 + b[1]*s1,
		a[2]*s0 + b[2]*s1,
		a[3]*s0 + b[3]*s1,
	}
}

// QuatAngle returns the angle in radians between two unit quaternions.
func QuatAngle(a, b [4]float32) float32 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
	if dot < 0 {
		dot = -dot
	}
	if dot > 1 {
		dot = 1
	}
	return float32(2 * math.Acos(float64(dot)))
}
