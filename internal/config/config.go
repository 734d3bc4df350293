package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt   = 0.01
	DefaultTMax = 10.0
	DefaultTol  = 1e-6
)

// Config holds one run setup. Q0, the domain bounds, and the angle flag
// are pointers so that a file which omits them leaves the scenario
// defaults in place instead of forcing zero values.
type Config struct {
	Scenario   string     `yaml:"scenario"`
	Integrator string     `yaml:"integrator"`
	Dt         float64    `yaml:"dt"`
	TMax       float64    `yaml:"t_max"`
	Q0         *float64   `yaml:"q0,omitempty"`
	QMin       *float64   `yaml:"q_min,omitempty"`
	QMax       *float64   `yaml:"q_max,omitempty"`
	Tol        float64    `yaml:"tolerance"`
	IsAngle    *bool      `yaml:"is_angle,omitempty"`
	Lenz       LenzConfig `yaml:"lenz"`
}

func Float(v float64) *float64 { return &v }

func Bool(v bool) *bool { return &v }

// LenzConfig selects where the Lenz coefficient comes from: a tabulated
// force file (Table non-empty) or the scenario's built-in coefficient.
// Scale multiplies whichever is active; it is a pointer because zero is a
// meaningful value (magnet removed) distinct from "not set".
type LenzConfig struct {
	Table  string   `yaml:"table"`
	Column int      `yaml:"column"`
	Scale  *float64 `yaml:"scale,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "pendulum",
		Integrator: "adams",
		Dt:         DefaultDt,
		TMax:       DefaultTMax,
		Tol:        DefaultTol,
		Lenz: LenzConfig{
			Column: 1,
			Scale:  Float(1.0),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
