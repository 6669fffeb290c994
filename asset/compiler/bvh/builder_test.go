package bvh

import (
	"math"
	"testing"

	"github.com/vantage-render/vantage/asset/geometry"
	"github.com/vantage-render/vantage/types"
)

func unitBoxAt(x, y, z float32) geometry.Box {
	return geometry.Box{
		Center:      types.Vec3{x, y, z},
		HalfExtents: types.Vec3{0.5, 0.5, 0.5},
		Orientation: types.QuatIdent(),
	}
}

// The four-corner scene from the renderer's smoke tests: four unit boxes
// on a 10x10 grid.
func cornerScene() *geometry.Scene {
	return &geometry.Scene{
		Boxes: []geometry.Box{
			unitBoxAt(0, 0, 0),
			unitBoxAt(10, 0, 0),
			unitBoxAt(0, 10, 0),
			unitBoxAt(10, 10, 0),
		},
	}
}

func collectLeafs(t *testing.T, tree *BVH, nodeIndex int32, leafs map[ObjectType][]int32) {
	t.Helper()

	if nodeIndex < 0 || int(nodeIndex) >= len(tree.Nodes) {
		t.Fatalf("child index %d out of range for %d nodes", nodeIndex, len(tree.Nodes))
	}
	node := &tree.Nodes[nodeIndex]
	if node.IsLeaf() {
		leafs[node.ObjectType] = append(leafs[node.ObjectType], node.ObjectIndex)
		return
	}
	collectLeafs(t, tree, node.Left, leafs)
	collectLeafs(t, tree, node.Right, leafs)
}

func TestCornerSceneTopology(t *testing.T) {
	result := Build(cornerScene(), DefaultOptions())
	if result.BVH == nil {
		t.Fatal("expected a BVH for 4 primitives")
	}

	tree := result.BVH
	if tree.Root != 0 {
		t.Fatalf("expected root index 0; got %d", tree.Root)
	}
	if len(tree.Nodes) != 7 {
		t.Fatalf("expected 7 nodes (4 leafs + 3 internal); got %d", len(tree.Nodes))
	}

	leafs := 0
	for idx := range tree.Nodes {
		if tree.Nodes[idx].IsLeaf() {
			leafs++
		}
	}
	if leafs != 4 {
		t.Fatalf("expected 4 leafs; got %d", leafs)
	}

	root := &tree.Nodes[tree.Root]
	expMin := types.Vec3{-0.5, -0.5, -0.5}
	expMax := types.Vec3{10.5, 10.5, 0.5}
	if !vecNear(root.Min, expMin) || !vecNear(root.Max, expMax) {
		t.Fatalf("expected root bounds %v-%v; got %v-%v", expMin, expMax, root.Min, root.Max)
	}
}

func TestDeterminism(t *testing.T) {
	sc := &geometry.Scene{
		Boxes: cornerScene().Boxes,
		Spheres: []geometry.Sphere{
			{Center: types.Vec3{5, 5, 5}, Radius: 1},
			{Center: types.Vec3{-3, 2, 7}, Radius: 0.25},
		},
		Capsules: []geometry.Capsule{
			{P0: types.Vec3{0, 0, 4}, P1: types.Vec3{0, 3, 4}, Radius: 0.5},
		},
	}

	first := Build(sc, DefaultOptions())
	second := Build(sc, DefaultOptions())

	if first.BVH == nil || second.BVH == nil {
		t.Fatal("expected both builds to produce a BVH")
	}
	if len(first.BVH.Nodes) != len(second.BVH.Nodes) {
		t.Fatalf("node counts differ between builds: %d vs %d", len(first.BVH.Nodes), len(second.BVH.Nodes))
	}
	for idx := range first.BVH.Nodes {
		if first.BVH.Nodes[idx] != second.BVH.Nodes[idx] {
			t.Fatalf("node %d differs between builds: %+v vs %+v", idx, first.BVH.Nodes[idx], second.BVH.Nodes[idx])
		}
	}
}

func TestContainmentInvariant(t *testing.T) {
	sc := &geometry.Scene{
		Boxes: cornerScene().Boxes,
		Spheres: []geometry.Sphere{
			{Center: types.Vec3{5, 5, 5}, Radius: 3},
			{Center: types.Vec3{-8, 1, 2}, Radius: 1},
			{Center: types.Vec3{4, -6, 1}, Radius: 2},
		},
		Capsules: []geometry.Capsule{
			{P0: types.Vec3{2, 2, -5}, P1: types.Vec3{6, 2, -5}, Radius: 1},
		},
		Planes: []geometry.Plane{
			{Center: types.Vec3{0, -10, 0}, Normal: types.Vec3{0, 1, 0}, Width: 20, Height: 20},
		},
	}

	result := Build(sc, DefaultOptions())
	if result.BVH == nil {
		t.Fatal("expected a BVH")
	}

	tree := result.BVH
	for idx := range tree.Nodes {
		node := &tree.Nodes[idx]
		if node.IsLeaf() {
			continue
		}
		if node.ObjectIndex != -1 {
			t.Fatalf("internal node %d carries object index %d", idx, node.ObjectIndex)
		}
		for _, child := range []int32{node.Left, node.Right} {
			if child < 0 || int(child) >= len(tree.Nodes) {
				t.Fatalf("internal node %d has invalid child index %d", idx, child)
			}
			if !node.Bounds().Contains(tree.Nodes[child].Bounds()) {
				t.Fatalf("node %d bounds %v-%v do not contain child %d bounds %v-%v",
					idx, node.Min, node.Max, child, tree.Nodes[child].Min, tree.Nodes[child].Max)
			}
		}
	}
}

func TestCompleteness(t *testing.T) {
	sc := &geometry.Scene{
		Boxes: []geometry.Box{unitBoxAt(0, 0, 0), unitBoxAt(4, 0, 0), unitBoxAt(8, 0, 0)},
		Spheres: []geometry.Sphere{
			{Center: types.Vec3{0, 4, 0}, Radius: 1},
			{Center: types.Vec3{4, 4, 0}, Radius: 1},
		},
		Capsules: []geometry.Capsule{
			{P0: types.Vec3{0, 8, 0}, P1: types.Vec3{2, 8, 0}, Radius: 0.5},
		},
		Planes: []geometry.Plane{
			{Center: types.Vec3{0, -2, 0}, Normal: types.Vec3{0, 1, 0}, Width: 10, Height: 10},
			{Center: types.Vec3{0, 20, 0}, Normal: types.Vec3{0, -1, 0}},
			{Center: types.Vec3{12, 0, 0}, Normal: types.Vec3{1, 0, 0}, Width: 6, Height: 6},
		},
	}

	result := Build(sc, DefaultOptions())
	if result.BVH == nil {
		t.Fatal("expected a BVH")
	}

	// The infinite plane is excluded; the two finite ones are in the tree.
	if len(result.InfinitePlaneIndices) != 1 || result.InfinitePlaneIndices[0] != 1 {
		t.Fatalf("expected infinite plane indices [1]; got %v", result.InfinitePlaneIndices)
	}
	if len(result.PlaneIndices) != 2 || result.PlaneIndices[0] != 0 || result.PlaneIndices[1] != 2 {
		t.Fatalf("expected tree plane indices [0 2]; got %v", result.PlaneIndices)
	}

	leafs := make(map[ObjectType][]int32)
	collectLeafs(t, result.BVH, result.BVH.Root, leafs)

	expected := map[ObjectType][]int32{
		ObjectBox:     {0, 1, 2},
		ObjectSphere:  {0, 1},
		ObjectCapsule: {0},
		ObjectPlane:   {0, 2},
	}
	for objType, expIndices := range expected {
		seen := make(map[int32]int)
		for _, objIndex := range leafs[objType] {
			seen[objIndex]++
		}
		if len(leafs[objType]) != len(expIndices) {
			t.Fatalf("expected %d %s leafs; got %d", len(expIndices), objType, len(leafs[objType]))
		}
		for _, objIndex := range expIndices {
			if seen[objIndex] != 1 {
				t.Fatalf("expected %s %d to appear in exactly one leaf; appeared %d times", objType, objIndex, seen[objIndex])
			}
		}
	}
}

func TestPrimitiveThreshold(t *testing.T) {
	below := &geometry.Scene{
		Spheres: []geometry.Sphere{
			{Center: types.Vec3{0, 0, 0}, Radius: 1},
			{Center: types.Vec3{5, 0, 0}, Radius: 1},
			{Center: types.Vec3{10, 0, 0}, Radius: 1},
		},
		// An infinite plane does not count towards the threshold.
		Planes: []geometry.Plane{
			{Center: types.Vec3{}, Normal: types.Vec3{0, 1, 0}},
		},
	}

	result := Build(below, DefaultOptions())
	if result.BVH != nil {
		t.Fatalf("expected no BVH for 3 boundable primitives; got %d nodes", len(result.BVH.Nodes))
	}
	if len(result.InfinitePlaneIndices) != 1 {
		t.Fatalf("expected the infinite plane to be reported; got %v", result.InfinitePlaneIndices)
	}

	at := &geometry.Scene{
		Spheres: append([]geometry.Sphere{}, below.Spheres...),
	}
	at.Spheres = append(at.Spheres, geometry.Sphere{Center: types.Vec3{15, 0, 0}, Radius: 1})

	if result = Build(at, DefaultOptions()); result.BVH == nil {
		t.Fatal("expected a BVH for 4 boundable primitives")
	}
}

func TestInfinitePlaneExclusion(t *testing.T) {
	sc := cornerScene()
	sc.Planes = []geometry.Plane{
		{Center: types.Vec3{}, Normal: types.Vec3{0, 1, 0}},
	}

	result := Build(sc, DefaultOptions())
	if result.BVH == nil {
		t.Fatal("expected a BVH from the 4 boxes")
	}
	if len(result.PlaneIndices) != 0 {
		t.Fatalf("expected no tree planes; got %v", result.PlaneIndices)
	}
	if len(result.InfinitePlaneIndices) != 1 || result.InfinitePlaneIndices[0] != 0 {
		t.Fatalf("expected infinite plane indices [0]; got %v", result.InfinitePlaneIndices)
	}
	for idx := range result.BVH.Nodes {
		node := &result.BVH.Nodes[idx]
		if node.IsLeaf() && node.ObjectType == ObjectPlane {
			t.Fatal("infinite plane leaked into the tree")
		}
	}
}

func TestCoincidentCentroids(t *testing.T) {
	// Five spheres sharing one center defeat centroid partitioning; the
	// builder must fall back to even midpoint splits and keep every
	// primitive in the tree.
	sc := &geometry.Scene{}
	for radius := 1; radius <= 5; radius++ {
		sc.Spheres = append(sc.Spheres, geometry.Sphere{
			Center: types.Vec3{3, 3, 3},
			Radius: float32(radius),
		})
	}

	result := Build(sc, DefaultOptions())
	if result.BVH == nil {
		t.Fatal("expected a BVH")
	}

	leafs := make(map[ObjectType][]int32)
	collectLeafs(t, result.BVH, result.BVH.Root, leafs)
	if len(leafs[ObjectSphere]) != 5 {
		t.Fatalf("expected all 5 spheres to reach leafs; got %d", len(leafs[ObjectSphere]))
	}
	if len(result.BVH.Nodes) != 9 {
		t.Fatalf("expected 9 nodes for 5 leafs; got %d", len(result.BVH.Nodes))
	}
}

func TestScatteredSceneTerminates(t *testing.T) {
	// A quasi-random spread with no clean clustering still terminates and
	// references every primitive exactly once.
	sc := &geometry.Scene{}
	for i := 0; i < 64; i++ {
		angle := float64(i) * 0.61803398875 * 2 * math.Pi
		sc.Spheres = append(sc.Spheres, geometry.Sphere{
			Center: types.Vec3{
				float32(math.Cos(angle)) * float32(i),
				float32(math.Sin(angle)) * float32(i%7),
				float32(i % 13),
			},
			Radius: 0.5 + float32(i%3),
		})
	}

	result := Build(sc, DefaultOptions())
	if result.BVH == nil {
		t.Fatal("expected a BVH")
	}

	leafs := make(map[ObjectType][]int32)
	collectLeafs(t, result.BVH, result.BVH.Root, leafs)
	if len(leafs[ObjectSphere]) != 64 {
		t.Fatalf("expected 64 sphere leafs; got %d", len(leafs[ObjectSphere]))
	}
	if exp := 2*64 - 1; len(result.BVH.Nodes) != exp {
		t.Fatalf("expected %d nodes for a binary tree with 64 leafs; got %d", exp, len(result.BVH.Nodes))
	}
}
