package geometry

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Get scene statistics as a formatted table.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer

	finitePlanes := 0
	for idx := range sc.Planes {
		if sc.Planes[idx].Finite() {
			finitePlanes++
		}
	}

	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Primitive", "Count"})
	table.Append([]string{"Boxes", fmt.Sprintf("%d", len(sc.Boxes))})
	table.Append([]string{"Spheres", fmt.Sprintf("%d", len(sc.Spheres))})
	table.Append([]string{"Capsules", fmt.Sprintf("%d", len(sc.Capsules))})
	table.Append([]string{"Planes (finite)", fmt.Sprintf("%d", finitePlanes)})
	table.Append([]string{"Planes (infinite)", fmt.Sprintf("%d", len(sc.Planes)-finitePlanes)})
	table.SetFooter([]string{"Total", fmt.Sprintf("%d", sc.PrimitiveCount())})

	table.Render()
	return buf.String()
}
