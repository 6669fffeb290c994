package geometry

import (
	"github.com/chewxy/math32"

	"github.com/vantage-render/vantage/types"
)

// An oriented box described by its center, half extents along its local
// axes and a rotation mapping local axes to world space.
type Box struct {
	Center      types.Vec3
	HalfExtents types.Vec3
	Orientation types.Quat
}

// A sphere described by its center and radius.
type Sphere struct {
	Center types.Vec3
	Radius float32
}

// A capsule described by its two cap centers and radius.
type Capsule struct {
	P0     types.Vec3
	P1     types.Vec3
	Radius float32
}

// A plane described by a point on the plane and its normal. Width and
// Height bound the plane along its tangent axes; a plane with a
// non-positive width or height extends to infinity and cannot be assigned
// a bounding box.
type Plane struct {
	Center types.Vec3
	Normal types.Vec3
	Width  float32
	Height float32
}

// Finite returns true if the plane declares bounds along both of its
// tangent axes.
func (p *Plane) Finite() bool {
	return p.Width > 0 && p.Height > 0
}

// Basis derives the plane tangent axes from its normal. The reference
// axis is chosen by the dominant normal component so the frame is stable
// under small normal perturbations and identical across calls.
func (p *Plane) Basis() (u, v types.Vec3) {
	n := p.Normal.Normalize()

	ref := types.XYZ(1, 0, 0)
	if math32.Abs(n[0]) > 0.9 {
		ref = types.XYZ(0, 1, 0)
	}

	u = n.Cross(ref).Normalize()
	v = n.Cross(u)
	return u, v
}

// A scene is an ordered collection of analytic primitives. Indices into
// the per-kind slices are stable and used by the BVH to reference
// primitives from tree leaves.
type Scene struct {
	Boxes    []Box
	Spheres  []Sphere
	Capsules []Capsule
	Planes   []Plane
}

// Total number of primitives across all kinds.
func (sc *Scene) PrimitiveCount() int {
	return len(sc.Boxes) + len(sc.Spheres) + len(sc.Capsules) + len(sc.Planes)
}
