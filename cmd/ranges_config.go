package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkdose/pkdose/pk"
)

// bandConfig is one [low, high] band in ranges.yaml.
type bandConfig struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// drugRangeConfig is the per-antibiotic section of ranges.yaml. Absent
// bands keep their built-in defaults.
type drugRangeConfig struct {
	Peak   *bandConfig `yaml:"peak"`
	Trough *bandConfig `yaml:"trough"`
	Steady *bandConfig `yaml:"steady"`
}

// rangesConfig represents the full ranges.yaml structure. All top-level
// sections must be listed to satisfy KnownFields(true) strict parsing.
type rangesConfig struct {
	Version string                     `yaml:"version"`
	AUC     *bandConfig                `yaml:"auc"`
	Drugs   map[string]drugRangeConfig `yaml:"drugs"`
}

// LoadRanges returns the therapeutic-range table: built-in defaults when
// path is empty, otherwise defaults with the YAML file's bands applied on
// top. Typos in field or drug names are errors, not silent ignores.
func LoadRanges(path string) (pk.RangeTable, error) {
	table := pk.DefaultRanges()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pk.RangeTable{}, fmt.Errorf("reading ranges file: %w", err)
	}

	var cfg rangesConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return pk.RangeTable{}, fmt.Errorf("parsing ranges file %s: %w", path, err)
	}

	if cfg.AUC != nil {
		table.AUC = pk.Range{Low: cfg.AUC.Low, High: cfg.AUC.High}
	}
	for name, drug := range cfg.Drugs {
		ab := pk.Antibiotic(name)
		current, ok := table.Drugs[ab]
		if !ok {
			return pk.RangeTable{}, fmt.Errorf("ranges file %s: unknown antibiotic %q", path, name)
		}
		if drug.Peak != nil {
			current.Peak = &pk.Range{Low: drug.Peak.Low, High: drug.Peak.High}
		}
		if drug.Trough != nil {
			current.Trough = &pk.Range{Low: drug.Trough.Low, High: drug.Trough.High}
		}
		if drug.Steady != nil {
			current.Steady = &pk.Range{Low: drug.Steady.Low, High: drug.Steady.High}
		}
		table.Drugs[ab] = current
	}
	return table, nil
}
