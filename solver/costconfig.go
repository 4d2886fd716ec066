package solver

// CostConfig holds the configurable cost constants and strategy thresholds
// named in spec §3. Defaults match the reference values; solver/config
// overlays a YAML file on top of these.
type CostConfig struct {
	// Flush/Fetch index by CostSite (CPU=0, PIM=1); see NumCostSite.
	Flush [NumCostSite]Cost
	Fetch [NumCostSite]Cost
	// Switch indexes by the site being switched FROM.
	Switch [NumCostSite]Cost

	MPKIThreshold         float64
	ParallelismThreshold  int
	BatchThreshold        float64
	BatchSize             int
	DataMoveThreshold     float64
}

// DefaultCostConfig returns the reference defaults from spec §3.
func DefaultCostConfig() CostConfig {
	return CostConfig{
		Flush:                [NumCostSite]Cost{CPU: 60, PIM: 30},
		Fetch:                [NumCostSite]Cost{CPU: 60, PIM: 30},
		Switch:               [NumCostSite]Cost{CPU: 800, PIM: 800},
		MPKIThreshold:        5,
		ParallelismThreshold: 15,
		BatchThreshold:       0.001,
		BatchSize:            10,
		DataMoveThreshold:    0, // CLI-supplied; no meaningful compiled default
	}
}

// SingleSegMaxReuseCost is the maximum possible reuse cost a single segment
// could contribute: max(flush[CPU]+fetch[PIM], flush[PIM]+fetch[CPU]).
// Used as the trie leaf importance unit (count * unit, spec §4.2), both for
// sorting leaves and for comparing a leaf against the batch cutoff (spec
// §4.4).
func (c CostConfig) SingleSegMaxReuseCost() Cost {
	a := c.Flush[CPU] + c.Fetch[PIM]
	b := c.Flush[PIM] + c.Fetch[CPU]
	if a > b {
		return a
	}
	return b
}
