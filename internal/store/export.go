package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

type ExportData struct {
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	TMax       float64            `json:"t_max"`
	Samples    int                `json:"samples"`
	IsAngle    bool               `json:"is_angle"`
	Times      []float64          `json:"times"`
	Positions  []float64          `json:"positions"`
	Velocities []float64          `json:"velocities"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(meta *RunMetadata, traj *dynamo.Trajectory) ExportData {
	return ExportData{
		Scenario:   meta.Scenario,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		TMax:       meta.TMax,
		Samples:    traj.Len(),
		IsAngle:    meta.IsAngle,
		Times:      traj.Times,
		Positions:  traj.Positions,
		Velocities: traj.Velocities,
		Metrics:    meta.Metrics,
	}
}

func ExportJSON(w io.Writer, meta *RunMetadata, traj *dynamo.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(meta, traj))
}

func ExportJSONFile(path string, meta *RunMetadata, traj *dynamo.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, meta, traj)
}
