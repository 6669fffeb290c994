package bvh

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Get build result statistics as a formatted table.
func (r *BuildResult) Stats() string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Metric", "Value"})

	if r.BVH == nil || r.BVH.Root < 0 {
		table.Append([]string{"BVH", "absent (below primitive threshold)"})
	} else {
		leafs := 0
		for idx := range r.BVH.Nodes {
			if r.BVH.Nodes[idx].IsLeaf() {
				leafs++
			}
		}
		root := &r.BVH.Nodes[r.BVH.Root]

		table.Append([]string{"Nodes", fmt.Sprintf("%d", len(r.BVH.Nodes))})
		table.Append([]string{"Leafs", fmt.Sprintf("%d", leafs)})
		table.Append([]string{"Max depth", fmt.Sprintf("%d", r.BVH.depth(r.BVH.Root))})
		table.Append([]string{"Root bounds min", fmt.Sprintf("%.3f %.3f %.3f", root.Min[0], root.Min[1], root.Min[2])})
		table.Append([]string{"Root bounds max", fmt.Sprintf("%.3f %.3f %.3f", root.Max[0], root.Max[1], root.Max[2])})
	}
	table.Append([]string{"Planes in tree", fmt.Sprintf("%d", len(r.PlaneIndices))})
	table.Append([]string{"Infinite planes", fmt.Sprintf("%d", len(r.InfinitePlaneIndices))})

	table.Render()
	return buf.String()
}

func (t *BVH) depth(nodeIndex int32) int {
	if nodeIndex < 0 {
		return 0
	}
	node := &t.Nodes[nodeIndex]
	if node.IsLeaf() {
		return 1
	}

	left := t.depth(node.Left)
	right := t.depth(node.Right)
	if left > right {
		return left + 1
	}
	return right + 1
}
