package store

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/sim"
)

// Store keeps one directory per run: metadata.json plus trajectory.csv in
// the serialization format.
type Store struct {
	baseDir string
}

// encoding/json rejects Inf; unbounded domains are clamped in metadata.
func finite(v float64) float64 {
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	if math.IsInf(v, -1) {
		return -math.MaxFloat64
	}
	return v
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	TMax       float64            `json:"t_max"`
	Q0         float64            `json:"q0"`
	QMin       float64            `json:"q_min"`
	QMax       float64            `json:"q_max"`
	Samples    int                `json:"samples"`
	IsAngle    bool               `json:"is_angle"`
	Integrator string             `json:"integrator"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(scenario, integrator string, p sim.Params, isAngle bool, fm dynamo.ForceModel, traj *dynamo.Trajectory, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenario,
		Timestamp:  time.Now(),
		Dt:         p.Dt,
		TMax:       p.TMax,
		Q0:         p.Q0,
		QMin:       finite(p.QMin),
		QMax:       finite(p.QMax),
		Samples:    traj.Len(),
		IsAngle:    isAngle,
		Integrator: integrator,
		Metrics:    metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trajectory.csv")
	if err := SaveCSV(csvPath, traj, fm, isAngle); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, *RunMetadata, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	traj, err := LoadCSV(csvPath, meta.IsAngle)
	if err != nil {
		return nil, nil, err
	}

	return traj, meta, nil
}
