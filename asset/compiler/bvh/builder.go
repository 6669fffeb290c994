// Package bvh constructs bounding volume hierarchies over analytic scene
// primitives using binned surface area heuristic splits.
package bvh

import (
	"time"

	"github.com/vantage-render/vantage/asset/geometry"
	"github.com/vantage-render/vantage/log"
	"github.com/vantage-render/vantage/types"
)

// Cost model and sizing knobs for the builder. The cost constants are
// relative weights, not physical truths: the defaults assume a
// ray-primitive test costs twice a traversal step.
type Options struct {
	// Cost of descending one tree level during traversal.
	TraversalCost float32

	// Cost of one ray-primitive intersection test.
	IntersectionCost float32

	// Number of centroid bins evaluated per axis.
	BinCount int

	// Scenes with fewer includable primitives than this are not worth a
	// tree; the tracer should linear-scan them instead.
	MinPrimitives int
}

// The default builder configuration.
func DefaultOptions() Options {
	return Options{
		TraversalCost:    1.0,
		IntersectionCost: 2.0,
		BinCount:         12,
		MinPrimitives:    4,
	}
}

// A flat BVH node. Leaf nodes have both child indices set to -1 and
// reference a scene primitive through ObjectIndex/ObjectType; internal
// nodes point at their children and carry ObjectIndex -1.
type Node struct {
	Min types.Vec3
	Max types.Vec3

	Left  int32
	Right int32

	ObjectIndex int32
	ObjectType  ObjectType
}

// Reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == -1 && n.Right == -1
}

// Set left and right child node indices.
func (n *Node) SetChildNodes(left, right int32) {
	n.Left = left
	n.Right = right
}

// Get the node bounding box.
func (n *Node) Bounds() AABB {
	return AABB{Min: n.Min, Max: n.Max}
}

// A built hierarchy: nodes stored as a contiguous list plus the index of
// the root node. The builder always appends the root first so Root is 0,
// but traversers should not rely on that.
type BVH struct {
	Nodes []Node
	Root  int32
}

// The output of a Build call. BVH is nil when the scene holds fewer than
// Options.MinPrimitives includable primitives. PlaneIndices lists the
// scene planes represented inside the tree; InfinitePlaneIndices lists
// the planes the tracer must test directly for every ray. Together they
// partition the scene plane list.
type BuildResult struct {
	BVH *BVH

	PlaneIndices         []int32
	InfinitePlaneIndices []int32
}

type stats struct {
	totalItems int
	nodes      int
	leafs      int
	maxDepth   int
}

type builder struct {
	logger log.Logger

	// Bvh nodes stored as a contiguous list.
	nodes []Node

	opts  Options
	stats stats
}

// Build constructs a BVH over all boxes, spheres, capsules and finite
// planes of a scene. Infinite planes cannot be bounded and are routed
// around the tree. The build is a pure, deterministic function of the
// scene: the same input ordering always yields an identical node list.
func Build(sc *geometry.Scene, opts Options) BuildResult {
	prims, planeIndices, infinitePlaneIndices := extract(sc)

	result := BuildResult{
		PlaneIndices:         planeIndices,
		InfinitePlaneIndices: infinitePlaneIndices,
	}

	b := &builder{
		logger: log.New("bvh builder"),
		nodes:  make([]Node, 0, 2*len(prims)),
		opts:   opts,
		stats: stats{
			totalItems: len(prims),
		},
	}

	if len(prims) < opts.MinPrimitives {
		b.logger.Debugf("skipping BVH build: %d primitives below threshold %d", len(prims), opts.MinPrimitives)
		return result
	}

	start := time.Now()
	rootIndex := b.partition(prims, 0)
	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)

	result.BVH = &BVH{
		Nodes: b.nodes,
		Root:  rootIndex,
	}
	return result
}

// Partition a primitive set and return the index of the subtree root, or
// -1 for an empty set.
func (b *builder) partition(prims []buildPrimitive, depth int) int32 {
	if len(prims) == 0 {
		return -1
	}
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}
	if len(prims) == 1 {
		return b.createLeaf(&prims[0])
	}

	// Calculate bounding box for node
	bounds := NewAABB()
	for idx := range prims {
		bounds = bounds.Union(prims[idx].bounds)
	}

	var left, right []buildPrimitive
	if split, ok := findSplit(prims, bounds, b.opts); ok {
		extent := bounds.Max[split.axis] - bounds.Min[split.axis]
		left = make([]buildPrimitive, 0, split.leftCount)
		right = make([]buildPrimitive, 0, split.rightCount)
		for idx := range prims {
			bin := binFor(prims[idx].centroid[split.axis], bounds.Min[split.axis], extent, b.opts.BinCount)
			if bin <= split.boundary {
				left = append(left, prims[idx])
			} else {
				right = append(right, prims[idx])
			}
		}
	}

	// Force an even split at the midpoint index when the SAH found no
	// split worth taking or when coincident centroids left one side
	// empty. Dropping primitives is never an option: every record must
	// end up in exactly one leaf, and halving the set guarantees the
	// recursion makes progress.
	if len(left) == 0 || len(right) == 0 {
		mid := len(prims) / 2
		left = prims[:mid]
		right = prims[mid:]
	}

	// Reserve the node slot before recursing: children are appended
	// after their parent, so child indices are only known afterwards.
	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Min:         bounds.Min,
		Max:         bounds.Max,
		Left:        -1,
		Right:       -1,
		ObjectIndex: -1,
		ObjectType:  ObjectNone,
	})
	b.stats.nodes++

	leftIndex := b.partition(left, depth+1)
	rightIndex := b.partition(right, depth+1)
	b.nodes[nodeIndex].SetChildNodes(leftIndex, rightIndex)

	return nodeIndex
}

// Append a leaf node for a single primitive and return its index.
func (b *builder) createLeaf(prim *buildPrimitive) int32 {
	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Min:         prim.bounds.Min,
		Max:         prim.bounds.Max,
		Left:        -1,
		Right:       -1,
		ObjectIndex: prim.objectIndex,
		ObjectType:  prim.objectType,
	})

	b.stats.nodes++
	b.stats.leafs++

	return nodeIndex
}
