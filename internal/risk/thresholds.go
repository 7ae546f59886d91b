package risk

// Thresholds holds the warn/critical boundaries driving scoring and
// recommendations. Conservative, "typical" values; tune after pilots.
type Thresholds struct {
	// Total harmonic distortion (%)
	THDWarn     float64 `yaml:"thd_warn"`
	THDCritical float64 `yaml:"thd_critical"`

	// Triplen harmonic index (% of fundamental)
	TriplenWarn     float64 `yaml:"triplen_warn"`
	TriplenCritical float64 `yaml:"triplen_critical"`

	// 5th harmonic (% of fundamental)
	FifthWarn     float64 `yaml:"fifth_warn"`
	FifthCritical float64 `yaml:"fifth_critical"`

	// Trend-mode indicators
	CrestWarn     float64 `yaml:"crest_warn"`
	CrestCritical float64 `yaml:"crest_critical"`

	VariabilityWarn     float64 `yaml:"variability_warn"`
	VariabilityCritical float64 `yaml:"variability_critical"`
}

// DefaultThresholds returns the stock threshold table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		THDWarn:     15.0,
		THDCritical: 20.0,

		TriplenWarn:     20.0,
		TriplenCritical: 30.0,

		FifthWarn:     12.0,
		FifthCritical: 15.0,

		CrestWarn:     2.5,
		CrestCritical: 3.0,

		VariabilityWarn:     25.0,
		VariabilityCritical: 40.0,
	}
}
