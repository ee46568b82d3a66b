package model

import "strings"

// Scenario selects which forecast column is drawn as the headline trajectory.
type Scenario int

const (
	ScenarioBase Scenario = iota
	ScenarioOptimistic
	ScenarioPessimistic
)

// Scenarios lists every scenario in the order the selector shows them.
var Scenarios = []Scenario{ScenarioBase, ScenarioOptimistic, ScenarioPessimistic}

// Colour tokens for each scenario's forecast line.
const (
	ColorBase        = "#27ae60"
	ColorOptimistic  = "#2980b9"
	ColorPessimistic = "#c0392b"
)

// Label returns the display label shown in scenario selectors.
func (s Scenario) Label() string {
	switch s {
	case ScenarioBase:
		return "Base Case (Trend + Shock)"
	case ScenarioOptimistic:
		return "Optimistic (Policy Success)"
	case ScenarioPessimistic:
		return "Pessimistic (Stagnation)"
	default:
		return "Unknown"
	}
}

// Key returns the short name used in flags and config.
func (s Scenario) Key() string {
	switch s {
	case ScenarioBase:
		return "base"
	case ScenarioOptimistic:
		return "optimistic"
	case ScenarioPessimistic:
		return "pessimistic"
	default:
		return "unknown"
	}
}

func (s Scenario) String() string { return s.Label() }

// Valid reports whether s is one of the three known scenarios.
func (s Scenario) Valid() bool {
	return s >= ScenarioBase && s <= ScenarioPessimistic
}

// MarshalText encodes the scenario as its short key so JSON and YAML exports
// stay readable.
func (s Scenario) MarshalText() ([]byte, error) {
	return []byte(s.Key()), nil
}

// LookupScenario matches either the full label or the short key, ignoring case.
func LookupScenario(s string) (Scenario, bool) {
	s = strings.TrimSpace(s)
	for _, sc := range Scenarios {
		if strings.EqualFold(s, sc.Key()) || strings.EqualFold(s, sc.Label()) {
			return sc, true
		}
	}
	return 0, false
}
