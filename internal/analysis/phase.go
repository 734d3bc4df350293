package analysis

import (
	"strings"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

// PhaseToASCII plots the position/velocity phase portrait of a trajectory
// as ASCII art.
func PhaseToASCII(traj *dynamo.Trajectory, width, height int) string {
	if traj == nil || traj.Len() == 0 {
		return ""
	}

	minX, maxX := traj.Positions[0], traj.Positions[0]
	minY, maxY := traj.Velocities[0], traj.Velocities[0]

	for i := 0; i < traj.Len(); i++ {
		q, v := traj.Positions[i], traj.Velocities[i]
		if q < minX {
			minX = q
		}
		if q > maxX {
			maxX = q
		}
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := 0; i < traj.Len(); i++ {
		col := int((traj.Positions[i] - minX) / rangeX * float64(width-1))
		row := height - 1 - int((traj.Velocities[i]-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Axes, where they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
