package bvh

// The SAH evaluator will not attempt to place split candidates along an
// axis whose parent extent is below this threshold.
const minAxisExtent float32 = 1e-6

// A candidate split plane selected by the surface area heuristic.
type splitCandidate struct {
	axis     int
	boundary int
	cost     float32

	leftCount  int
	rightCount int
}

type sahBin struct {
	count  int
	bounds AABB
}

// binFor maps a centroid to a bin index along an axis. Centroids on the
// upper bound land in the last bin.
func binFor(c, min, extent float32, binCount int) int {
	bin := int(float32(binCount) * (c - min) / extent)
	if bin < 0 {
		bin = 0
	}
	if bin >= binCount {
		bin = binCount - 1
	}
	return bin
}

// findSplit evaluates a binned SAH sweep over all three axes and returns
// the cheapest split plane. The split is only returned if its estimated
// cost undercuts the cost of intersecting all primitives directly; a
// false flag tells the caller to emit a leaf or force an even split.
//
// Ties resolve to the first candidate found, scanning axes X,Y,Z and
// boundaries left to right, so the output is reproducible for a fixed
// input ordering.
func findSplit(prims []buildPrimitive, parent AABB, opts Options) (splitCandidate, bool) {
	leafCost := float32(len(prims)) * opts.IntersectionCost
	parentArea := parent.SurfaceArea()
	if parentArea <= 0 {
		// Fully degenerate parent (e.g. coplanar points); the area ratios
		// are undefined so no split can be scored.
		return splitCandidate{axis: -1}, false
	}

	best := splitCandidate{axis: -1}
	found := false

	bins := make([]sahBin, opts.BinCount)
	rightCounts := make([]int, opts.BinCount)
	rightAreas := make([]float32, opts.BinCount)

	for axis := 0; axis < 3; axis++ {
		extent := parent.Max[axis] - parent.Min[axis]
		if extent < minAxisExtent {
			continue
		}

		for idx := range bins {
			bins[idx] = sahBin{bounds: NewAABB()}
		}
		for idx := range prims {
			bin := binFor(prims[idx].centroid[axis], parent.Min[axis], extent, opts.BinCount)
			bins[bin].count++
			bins[bin].bounds = bins[bin].bounds.Union(prims[idx].bounds)
		}

		// Mirrored sweep: accumulate suffix counts/areas right to left so
		// the left to right cost sweep sees both sides of each boundary.
		suffixCount := 0
		suffixBounds := NewAABB()
		for idx := opts.BinCount - 1; idx > 0; idx-- {
			suffixCount += bins[idx].count
			suffixBounds = suffixBounds.Union(bins[idx].bounds)
			rightCounts[idx] = suffixCount
			rightAreas[idx] = suffixBounds.SurfaceArea()
		}

		leftCount := 0
		leftBounds := NewAABB()
		for boundary := 0; boundary < opts.BinCount-1; boundary++ {
			leftCount += bins[boundary].count
			leftBounds = leftBounds.Union(bins[boundary].bounds)

			rightCount := rightCounts[boundary+1]
			if leftCount == 0 || rightCount == 0 {
				continue
			}

			cost := opts.TraversalCost +
				(leftBounds.SurfaceArea()/parentArea)*float32(leftCount)*opts.IntersectionCost +
				(rightAreas[boundary+1]/parentArea)*float32(rightCount)*opts.IntersectionCost

			if !found || cost < best.cost {
				best = splitCandidate{
					axis:       axis,
					boundary:   boundary,
					cost:       cost,
					leftCount:  leftCount,
					rightCount: rightCount,
				}
				found = true
			}
		}
	}

	if !found || best.cost >= leafCost {
		return splitCandidate{axis: -1}, false
	}
	return best, true
}
