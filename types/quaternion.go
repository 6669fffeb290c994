package types

import "github.com/chewxy/math32"

// Unit quaternion representing a 3D rotation.
type Quat struct {
	V Vec3
	W float32
}

// Create identity quaternion.
func QuatIdent() Quat {
	return Quat{
		V: Vec3{},
		W: 1.0,
	}
}

// Create a quaternion from an axis vector and an angle. The axis does not
// need to be pre-normalized.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	sin := math32.Sin(angle * 0.5)
	cos := math32.Cos(angle * 0.5)
	return Quat{
		V: axis.Normalize().Mul(sin),
		W: cos,
	}
}

// Rotates a vector by the rotation this quaternion represents.
func (q1 Quat) Rotate(v Vec3) Vec3 {
	cross := q1.V.Cross(v)
	// v + 2q_w * (q_v x v) + 2q_v x (q_v x v)
	return v.Add(cross.Mul(2 * q1.W)).Add(q1.V.Mul(2).Cross(cross))
}

// Multiplies two quaternions. Multiplication is NOT commutative, meaning
// q1.Mul(q2) does not necessarily equal q2.Mul(q1).
func (q1 Quat) Mul(q2 Quat) Quat {
	return Quat{
		q1.V.Cross(q2.V).Add(q2.V.Mul(q1.W)).Add(q1.V.Mul(q2.W)),
		q1.W*q2.W - q1.V.Dot(q2.V),
	}
}

// Returns the length of the quaternion, also known as its norm.
func (q1 Quat) Len() float32 {
	return math32.Sqrt(q1.W*q1.W + q1.V[0]*q1.V[0] + q1.V[1]*q1.V[1] + q1.V[2]*q1.V[2])
}

// Normalizes the quaternion, returning its versor (unit quaternion).
func (q1 Quat) Normalize() Quat {
	length := q1.Len()

	if math32.Abs(1-length) < floatCmpEpsilon {
		return q1
	}
	if length == 0 {
		return QuatIdent()
	}

	inv := 1.0 / length
	return Quat{q1.V.Mul(inv), q1.W * inv}
}
