// Package config loads an optional YAML overlay that lets an operator
// override the solver's cost constants and strategy thresholds without
// recompiling, grounded on the teacher's workload.LoadWorkloadSpec strict
// YAML loader.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pimprof/solver"
)

// Overlay is the YAML-facing shape of a CostConfig override. Every field is
// optional; a zero value (omitted in the YAML) leaves the corresponding
// DefaultCostConfig() value untouched.
type Overlay struct {
	FlushCPU  *float64 `yaml:"flush_cpu,omitempty"`
	FlushPIM  *float64 `yaml:"flush_pim,omitempty"`
	FetchCPU  *float64 `yaml:"fetch_cpu,omitempty"`
	FetchPIM  *float64 `yaml:"fetch_pim,omitempty"`
	SwitchCPU *float64 `yaml:"switch_cpu,omitempty"`
	SwitchPIM *float64 `yaml:"switch_pim,omitempty"`

	MPKIThreshold        *float64 `yaml:"mpki_threshold,omitempty"`
	ParallelismThreshold *int     `yaml:"parallelism_threshold,omitempty"`
	BatchThreshold       *float64 `yaml:"batch_threshold,omitempty"`
	BatchSize            *int     `yaml:"batch_size,omitempty"`
	DataMoveThreshold    *float64 `yaml:"data_move_threshold,omitempty"`
}

// Load reads and strictly parses a YAML overlay file: unrecognized keys
// (typos) are rejected rather than silently ignored.
func Load(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading overlay: %w", err)
	}
	var o Overlay
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&o); err != nil {
		return nil, fmt.Errorf("config: parsing overlay: %w", err)
	}
	return &o, nil
}

// Apply merges the overlay onto a base CostConfig (typically
// solver.DefaultCostConfig()), returning the merged result. The base is
// left unmodified.
func (o *Overlay) Apply(base solver.CostConfig) solver.CostConfig {
	cfg := base
	if o == nil {
		return cfg
	}
	if o.FlushCPU != nil {
		cfg.Flush[solver.CPU] = solver.Cost(*o.FlushCPU)
	}
	if o.FlushPIM != nil {
		cfg.Flush[solver.PIM] = solver.Cost(*o.FlushPIM)
	}
	if o.FetchCPU != nil {
		cfg.Fetch[solver.CPU] = solver.Cost(*o.FetchCPU)
	}
	if o.FetchPIM != nil {
		cfg.Fetch[solver.PIM] = solver.Cost(*o.FetchPIM)
	}
	if o.SwitchCPU != nil {
		cfg.Switch[solver.CPU] = solver.Cost(*o.SwitchCPU)
	}
	if o.SwitchPIM != nil {
		cfg.Switch[solver.PIM] = solver.Cost(*o.SwitchPIM)
	}
	if o.MPKIThreshold != nil {
		cfg.MPKIThreshold = *o.MPKIThreshold
	}
	if o.ParallelismThreshold != nil {
		cfg.ParallelismThreshold = *o.ParallelismThreshold
	}
	if o.BatchThreshold != nil {
		cfg.BatchThreshold = *o.BatchThreshold
	}
	if o.BatchSize != nil {
		cfg.BatchSize = *o.BatchSize
	}
	if o.DataMoveThreshold != nil {
		cfg.DataMoveThreshold = *o.DataMoveThreshold
	}
	return cfg
}
