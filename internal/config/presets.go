package config

import "math"

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"gentle": {
			Scenario: "pendulum", Integrator: "adams", Dt: 0.01, TMax: 20.0,
			Q0: Float(0.3), QMin: Float(-math.Pi), QMax: Float(math.Pi), Tol: 1e-6, IsAngle: Bool(true),
			Lenz: LenzConfig{Column: 1, Scale: Float(1.0)},
		},
		"wide": {
			Scenario: "pendulum", Integrator: "adams", Dt: 0.01, TMax: 30.0,
			Q0: Float(2.5), QMin: Float(-math.Pi), QMax: Float(math.Pi), Tol: 1e-6, IsAngle: Bool(true),
			Lenz: LenzConfig{Column: 1, Scale: Float(1.0)},
		},
		"strong-magnet": {
			Scenario: "pendulum", Integrator: "adams", Dt: 0.01, TMax: 20.0,
			Q0: Float(1.2), QMin: Float(-math.Pi), QMax: Float(math.Pi), Tol: 1e-6, IsAngle: Bool(true),
			Lenz: LenzConfig{Column: 1, Scale: Float(4.0)},
		},
	},
	"rail": {
		"short": {
			Scenario: "rail", Integrator: "adams", Dt: 0.005, TMax: 5.0,
			Q0: Float(0.05), QMin: Float(0), QMax: Float(1.0), Tol: 1e-6,
			Lenz: LenzConfig{Column: 1, Scale: Float(1.0)},
		},
		"freefall": {
			Scenario: "rail", Integrator: "adams", Dt: 0.005, TMax: 5.0,
			Q0: Float(0.05), QMin: Float(0), QMax: Float(1.0), Tol: 1e-6,
			Lenz: LenzConfig{Column: 1, Scale: Float(0.0)},
		},
	},
	"spring": {
		"ringdown": {
			Scenario: "spring", Integrator: "adams", Dt: 0.01, TMax: 30.0,
			Q0: Float(0.5), QMin: Float(-2.0), QMax: Float(2.0), Tol: 1e-6,
			Lenz: LenzConfig{Column: 1, Scale: Float(1.0)},
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
