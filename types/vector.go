package types

import (
	"github.com/chewxy/math32"

	"golang.org/x/image/math/f32"
)

type Vec2 f32.Vec2
type Vec3 f32.Vec3
type Vec4 f32.Vec4

const floatCmpEpsilon = 1e-6

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Get 3 component vector length.
func (v Vec3) Len() float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize 3 component vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < floatCmpEpsilon {
		return Vec3{}
	}
	inv := 1.0 / l
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Calculate dot product of 2 vectors.
func (v Vec3) Dot(v2 Vec3) float32 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Calc min component from two vectors.
func MinVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] < out[0] {
		out[0] = v2[0]
	}
	if v2[1] < out[1] {
		out[1] = v2[1]
	}
	if v2[2] < out[2] {
		out[2] = v2[2]
	}
	return out
}

// Calc max component from two vectors.
func MaxVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] > out[0] {
		out[0] = v2[0]
	}
	if v2[1] > out[1] {
		out[1] = v2[1]
	}
	if v2[2] > out[2] {
		out[2] = v2[2]
	}
	return out
}
