package bvh

import (
	"math"

	"github.com/vantage-render/vantage/asset/geometry"
	"github.com/vantage-render/vantage/types"
)

// Axis-aligned bounding box. Boxes produced by the extractor are never
// inverted (Min <= Max componentwise) but may be degenerate with zero
// extent along one or more axes.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Create an inverted AABB that acts as the identity element for Union:
// the union of the empty box with any box b yields b.
func NewAABB() AABB {
	return AABB{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Union returns the tightest box containing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// ExtendPoint grows the box to include a point.
func (b AABB) ExtendPoint(p types.Vec3) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, p),
		Max: types.MaxVec3(b.Max, p),
	}
}

// Surface area of the box. Only the relative magnitude matters to the
// SAH cost model.
func (b AABB) SurfaceArea() float32 {
	side := b.Max.Sub(b.Min)
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Midpoint of the box.
func (b AABB) Centroid() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether other lies fully inside the box.
func (b AABB) Contains(other AABB) bool {
	for axis := 0; axis < 3; axis++ {
		if other.Min[axis] < b.Min[axis] || other.Max[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Bounds for an oriented box: fold the 8 rotated corners.
func BoxAABB(box *geometry.Box) AABB {
	bounds := NewAABB()
	he := box.HalfExtents
	for i := 0; i < 8; i++ {
		corner := types.Vec3{he[0], he[1], he[2]}
		if i&1 != 0 {
			corner[0] = -corner[0]
		}
		if i&2 != 0 {
			corner[1] = -corner[1]
		}
		if i&4 != 0 {
			corner[2] = -corner[2]
		}
		bounds = bounds.ExtendPoint(box.Center.Add(box.Orientation.Rotate(corner)))
	}
	return bounds
}

// Bounds for a sphere: center +/- radius on each axis.
func SphereAABB(sphere *geometry.Sphere) AABB {
	r := types.Vec3{sphere.Radius, sphere.Radius, sphere.Radius}
	return AABB{
		Min: sphere.Center.Sub(r),
		Max: sphere.Center.Add(r),
	}
}

// Bounds for a capsule: union of the two cap-sphere boxes.
func CapsuleAABB(capsule *geometry.Capsule) AABB {
	r := types.Vec3{capsule.Radius, capsule.Radius, capsule.Radius}
	p0 := AABB{Min: capsule.P0.Sub(r), Max: capsule.P0.Add(r)}
	p1 := AABB{Min: capsule.P1.Sub(r), Max: capsule.P1.Add(r)}
	return p0.Union(p1)
}

// Bounds for a plane. Infinite planes have no bounding box; the second
// return value reports whether a box exists. Finite plane bounds fold the
// four corners and may be degenerate (zero thickness).
func PlaneAABB(plane *geometry.Plane) (AABB, bool) {
	if !plane.Finite() {
		return AABB{}, false
	}

	u, v := plane.Basis()
	halfU := u.Mul(plane.Width * 0.5)
	halfV := v.Mul(plane.Height * 0.5)

	bounds := NewAABB()
	bounds = bounds.ExtendPoint(plane.Center.Add(halfU).Add(halfV))
	bounds = bounds.ExtendPoint(plane.Center.Add(halfU).Sub(halfV))
	bounds = bounds.ExtendPoint(plane.Center.Sub(halfU).Add(halfV))
	bounds = bounds.ExtendPoint(plane.Center.Sub(halfU).Sub(halfV))
	return bounds, true
}
