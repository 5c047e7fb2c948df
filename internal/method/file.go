package method

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// methodFile is the on-disk layout of a custom methods file:
//
//	methods:
//	  - name: IMCA
//	    description: Indianapolis Muslim Community Association
//	    fajr_angle: 15
//	    isha_angle: 15
//	    madhab: hanafi
//	    high_lat_rule: one-seventh
type methodFile struct {
	Methods []methodEntry `yaml:"methods"`
}

type methodEntry struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Aliases      []string `yaml:"aliases"`
	FajrAngle    float64  `yaml:"fajr_angle"`
	IshaAngle    float64  `yaml:"isha_angle"`
	IshaInterval int      `yaml:"isha_interval"`
	Madhab       string   `yaml:"madhab"`
	HighLatRule  string   `yaml:"high_lat_rule"`
}

// LoadFile reads custom methods from a YAML file.
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read methods file: %w", err)
	}
	return Parse(data)
}

// Parse decodes custom methods from YAML. Madhab defaults to shafi and the
// high latitude rule to angle-based, matching the built-in presets.
func Parse(data []byte) ([]Preset, error) {
	var f methodFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid methods file: %w", err)
	}

	out := make([]Preset, 0, len(f.Methods))
	for i, e := range f.Methods {
		if e.Name == "" {
			return nil, fmt.Errorf("methods[%d]: name is required", i)
		}

		m := CalculationMethod{
			Name:         e.Name,
			FajrAngle:    e.FajrAngle,
			IshaAngle:    e.IshaAngle,
			IshaInterval: e.IshaInterval,
			AsrFactor:    Standard,
			HighLatRule:  AngleBased,
		}
		if e.Madhab != "" {
			factor, err := ParseMadhab(e.Madhab)
			if err != nil {
				return nil, fmt.Errorf("methods[%d] %s: %w", i, e.Name, err)
			}
			m.AsrFactor = factor
		}
		if e.HighLatRule != "" {
			r, err := ParseHighLatitudeRule(e.HighLatRule)
			if err != nil {
				return nil, fmt.Errorf("methods[%d] %s: %w", i, e.Name, err)
			}
			m.HighLatRule = r
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("methods[%d]: %w", i, err)
		}

		desc := e.Description
		if desc == "" {
			desc = e.Name
		}
		out = append(out, Preset{Method: m, Description: desc, Aliases: e.Aliases})
	}
	return out, nil
}
