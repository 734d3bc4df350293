// Package viz renders trajectories in the terminal: static asciigraph
// panels and a live bubbletea view.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

const radToDeg = 180 / math.Pi

func dofLabel(isAngle bool) (pos, vel, frc string) {
	if isAngle {
		return "angle (deg)", "angular velocity (deg/s)", "moment"
	}
	return "position (m)", "velocity (m/s)", "force (N)"
}

// PlotTrajectory renders position and velocity panels for a single run.
func PlotTrajectory(traj *dynamo.Trajectory, isAngle bool) string {
	posLabel, velLabel, _ := dofLabel(isAngle)

	transform := 1.0
	if isAngle {
		transform = radToDeg
	}

	var sb strings.Builder
	sb.WriteString(panel(scaled(traj.Positions, transform), posLabel))
	sb.WriteString("\n")
	sb.WriteString(panel(scaled(traj.Velocities, transform), velLabel))
	return sb.String()
}

// PlotComparison renders the original three-panel layout: dof and velocity
// with and without the magnet, then the forcing term against the Lenz
// braking force along the braked run.
func PlotComparison(with, without *dynamo.Trajectory, fm dynamo.ForceModel, isAngle bool) string {
	posLabel, velLabel, frcLabel := dofLabel(isAngle)

	transform := 1.0
	if isAngle {
		transform = radToDeg
	}

	var sb strings.Builder

	sb.WriteString(overlay(
		scaled(with.Positions, transform),
		scaled(without.Positions, transform),
		posLabel))
	sb.WriteString("\n")
	sb.WriteString(overlay(
		scaled(with.Velocities, transform),
		scaled(without.Velocities, transform),
		velLabel))
	sb.WriteString("\n")

	ext := make([]float64, with.Len())
	lenz := make([]float64, with.Len())
	for i := 0; i < with.Len(); i++ {
		t, q, v := with.At(i)
		ext[i] = fm.External(t, q)
		lenz[i] = -fm.Lenz(q) * v
	}
	sb.WriteString(overlay(ext, lenz, frcLabel+"  (forcing vs lenz)"))
	sb.WriteString("\n")
	sb.WriteString(Subtle.Render(fmt.Sprintf("samples: with magnet %d, without %d", with.Len(), without.Len())))
	sb.WriteString("\n")

	return sb.String()
}

func panel(data []float64, caption string) string {
	graph := asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
	)
	return PanelStyle.Render(graph) + "\n" + TitleStyle.Render(caption) + "\n"
}

func overlay(a, b []float64, caption string) string {
	graph := asciigraph.PlotMany([][]float64{a, b},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Goldenrod),
	)
	legend := LegendWith.Render("── with magnet") + "  " + LegendWithout.Render("── without magnet")
	return PanelStyle.Render(graph) + "\n" + TitleStyle.Render(caption) + "  " + legend + "\n"
}

func scaled(data []float64, factor float64) []float64 {
	if factor == 1 {
		return data
	}
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v * factor
	}
	return out
}
