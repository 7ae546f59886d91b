package analysis

import (
	"github.com/user/pq_analyzer_go/internal/ingest"
	"github.com/user/pq_analyzer_go/internal/risk"
)

// Analysis mode labels, surfaced verbatim in reports.
const (
	ModeWaveform = "Waveform FFT Mode"
	ModeTrend    = "Trend Risk Mode (Log Cadence)"
)

// PhaseResult holds one phase's assessment. Spectrum is nil in trend mode;
// THD/triplen/5th are meaningful only in waveform mode. Crest and
// variability are computed in both modes.
type PhaseResult struct {
	Phase        string
	Risk         risk.Result
	Spectrum     map[int]float64
	Series       ingest.Series
	THDPct       float64
	TriplenPct   float64
	FifthPct     float64
	Crest        float64
	Variability  float64
	ValidSamples int
	Summary      string
}

// RunOutcome is everything the presentation layer needs from one pipeline
// invocation. List fields keep deterministic order; the core never
// truncates them.
type RunOutcome struct {
	FacilityScore    int
	Band             risk.Band
	Mode             string
	SampleRateHz     float64
	Phases           []PhaseResult
	SkippedPhases    []string
	NoScorablePhases bool

	BaselineScore *int
	ScoreDelta    *int

	Findings        []string
	TopRisks        []string
	Recommendations []string
	SummaryLines    []string

	ExecutiveVerdict string
}
