// Package scenarios runs yaml-defined comparison checks against the curve
// model.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/ocv/core/model"
)

type RecordDef struct {
	Label        string    `yaml:"label"`
	SoH          float64   `yaml:"soh"`
	Coefficients []float64 `yaml:"coefficients"`
}

func (r RecordDef) ToModel() model.BatteryStateRecord {
	return model.BatteryStateRecord{Label: r.Label, Coefficients: r.Coefficients, SoH: r.SoH}
}

type CompareDef struct {
	A       string `yaml:"a"`
	B       string `yaml:"b"`
	Samples int    `yaml:"samples"`
}

type Expected struct {
	SoC      []float64 `yaml:"soc"`
	VoltageA []float64 `yaml:"voltage_a"`
	VoltageB []float64 `yaml:"voltage_b"`
}

type Scenario struct {
	Name    string      `yaml:"name"`
	Records []RecordDef `yaml:"records"`
	Compare CompareDef  `yaml:"compare"`
	Expect  Expected    `yaml:"expect"`
}

// Load reads a scenario definition from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &sc, nil
}
