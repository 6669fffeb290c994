package bvh

import (
	"github.com/vantage-render/vantage/asset/geometry"
	"github.com/vantage-render/vantage/types"
)

// The kind of scene primitive referenced by a BVH leaf.
type ObjectType int32

const (
	ObjectBox ObjectType = iota
	ObjectSphere
	ObjectCapsule
	ObjectPlane

	// Placeholder carried by internal nodes; never read by traversal.
	ObjectNone ObjectType = -1
)

func (t ObjectType) String() string {
	switch t {
	case ObjectBox:
		return "box"
	case ObjectSphere:
		return "sphere"
	case ObjectCapsule:
		return "capsule"
	case ObjectPlane:
		return "plane"
	}
	return "none"
}

// A flattened build record for a single scene primitive. Records exist
// only for the duration of a Build call.
type buildPrimitive struct {
	bounds   AABB
	centroid types.Vec3

	objectIndex int32
	objectType  ObjectType
}

// Flatten a scene into build records. Planes are split into those that
// enter the tree (finite) and those the tracer must always test directly
// (infinite); both groups are reported as indices into the scene plane
// list, in input order.
func extract(sc *geometry.Scene) (prims []buildPrimitive, planeIndices, infinitePlaneIndices []int32) {
	prims = make([]buildPrimitive, 0, sc.PrimitiveCount())
	planeIndices = make([]int32, 0, len(sc.Planes))
	infinitePlaneIndices = make([]int32, 0)

	for idx := range sc.Boxes {
		bounds := BoxAABB(&sc.Boxes[idx])
		prims = append(prims, buildPrimitive{
			bounds:      bounds,
			centroid:    bounds.Centroid(),
			objectIndex: int32(idx),
			objectType:  ObjectBox,
		})
	}

	for idx := range sc.Spheres {
		bounds := SphereAABB(&sc.Spheres[idx])
		prims = append(prims, buildPrimitive{
			bounds:      bounds,
			centroid:    bounds.Centroid(),
			objectIndex: int32(idx),
			objectType:  ObjectSphere,
		})
	}

	for idx := range sc.Capsules {
		bounds := CapsuleAABB(&sc.Capsules[idx])
		prims = append(prims, buildPrimitive{
			bounds:      bounds,
			centroid:    bounds.Centroid(),
			objectIndex: int32(idx),
			objectType:  ObjectCapsule,
		})
	}

	for idx := range sc.Planes {
		bounds, ok := PlaneAABB(&sc.Planes[idx])
		if !ok {
			infinitePlaneIndices = append(infinitePlaneIndices, int32(idx))
			continue
		}
		planeIndices = append(planeIndices, int32(idx))
		prims = append(prims, buildPrimitive{
			bounds:      bounds,
			centroid:    bounds.Centroid(),
			objectIndex: int32(idx),
			objectType:  ObjectPlane,
		})
	}

	return prims, planeIndices, infinitePlaneIndices
}
