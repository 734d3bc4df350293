package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

const (
	svgWidth   = 800
	svgHeight  = 480
	svgPadding = 40
)

// TrajectorySVG renders position and velocity curves as an SVG document.
func TrajectorySVG(traj *dynamo.Trajectory) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, svgWidth, svgHeight, svgWidth, svgHeight))

	if traj.Len() > 1 {
		writePolyline(&sb, traj.Times, traj.Positions, "#00ff88")
		writePolyline(&sb, traj.Times, traj.Velocities, "#00ccff")
	}

	sb.WriteString(`<text x="48" y="28" fill="#00ff88" font-family="monospace" font-size="14">position</text>
<text x="140" y="28" fill="#00ccff" font-family="monospace" font-size="14">velocity</text>
</svg>
`)
	return sb.String()
}

func writePolyline(sb *strings.Builder, xs, ys []float64, color string) {
	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, color))
	for i := range xs {
		px := svgPadding + (xs[i]-minX)/rangeX*float64(svgWidth-2*svgPadding)
		py := float64(svgHeight-svgPadding) - (ys[i]-minY)/rangeY*float64(svgHeight-2*svgPadding)
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
	}
	sb.WriteString("\"/>\n")
}

func bounds(vals []float64) (min, max float64) {
	min, max = vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func ExportSVGFile(path string, traj *dynamo.Trajectory) error {
	return os.WriteFile(path, []byte(TrajectorySVG(traj)), 0644)
}
