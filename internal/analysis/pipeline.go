// Package analysis orchestrates the batch pipeline: load, normalize,
// mode decision, per-phase scoring, facility aggregation, and the optional
// baseline comparison.
package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/user/pq_analyzer_go/internal/config"
	"github.com/user/pq_analyzer_go/internal/ingest"
	"github.com/user/pq_analyzer_go/internal/recommend"
	"github.com/user/pq_analyzer_go/internal/risk"
	"github.com/user/pq_analyzer_go/internal/signal"
)

// minScorableSamples is the per-phase floor of valid readings; phases
// below it are excluded from scoring and charting but do not abort the
// run.
const minScorableSamples = 8

// Pipeline runs one dataset through the full analysis. Each invocation is
// independent and stateless; nothing is cached between runs.
type Pipeline struct {
	Settings   config.Settings
	Thresholds risk.Thresholds
}

// New builds a pipeline with the default threshold table.
func New(cfg config.Settings) *Pipeline {
	return &Pipeline{Settings: cfg, Thresholds: risk.DefaultThresholds()}
}

// Run executes load -> normalize -> mode decision -> per-phase scoring ->
// facility aggregation on csvPath, and independently on baselineCSV when
// given. A baseline failure is recoverable: it is logged and the outcome
// simply carries no baseline fields.
func (p *Pipeline) Run(csvPath, mapName, baselineCSV string) (*RunOutcome, error) {
	phases, skipped, sampleRate, fftOK, err := p.scoreDataset(csvPath, mapName)
	if err != nil {
		return nil, err
	}

	mode := ModeTrend
	if fftOK {
		mode = ModeWaveform
	} else {
		log.Warn().
			Float64("sample_rate_hz", sampleRate).
			Float64("fundamental_hz", p.Settings.FundamentalHz).
			Msg("sampling rate too low for waveform FFT; using trend-risk indicators")
	}

	out := &RunOutcome{
		Mode:          mode,
		SampleRateHz:  sampleRate,
		Phases:        phases,
		SkippedPhases: skipped,
	}

	var findings, topRisks, recs []string
	for _, ph := range phases {
		for _, f := range ph.Risk.Findings {
			findings = append(findings, fmt.Sprintf("Phase %s: %s", ph.Phase, f))
		}
		for _, r := range ph.Risk.TopRisks {
			topRisks = append(topRisks, fmt.Sprintf("Phase %s: %s", ph.Phase, r))
		}
		if fftOK {
			recs = append(recs, recommend.Waveform(ph.THDPct, ph.TriplenPct, ph.FifthPct, p.Thresholds)...)
		} else {
			recs = append(recs, recommend.Trend(ph.Crest, ph.Variability, p.Thresholds)...)
		}
	}

	out.FacilityScore = facilityScore(phases)
	out.Band = risk.BandFromScore(out.FacilityScore)
	out.ExecutiveVerdict = executiveVerdict(out.FacilityScore)
	if len(phases) == 0 {
		out.NoScorablePhases = true
		log.Warn().Msg("no scorable phases; facility score defaults to 0")
	}

	out.Findings = findings
	out.TopRisks = recommend.DedupePreserveOrder(topRisks)
	out.Recommendations = recommend.DedupePreserveOrder(recs)

	out.SummaryLines = append(out.SummaryLines,
		fmt.Sprintf("Facility risk score: %d/100 (%s)", out.FacilityScore, out.Band),
		fmt.Sprintf("Estimated sampling rate: ~%.2f Hz", sampleRate),
		fmt.Sprintf("Analysis mode: %s", mode),
	)
	if out.NoScorablePhases {
		out.SummaryLines = append(out.SummaryLines, "No scorable phases: every phase had fewer than 8 valid samples.")
	}
	for _, ph := range phases {
		out.SummaryLines = append(out.SummaryLines, ph.Summary)
	}

	if baselineCSV != "" {
		if base, err := p.baselineScore(baselineCSV, mapName); err != nil {
			log.Warn().Err(err).Str("path", baselineCSV).Msg("baseline comparison failed")
		} else {
			delta := out.FacilityScore - base
			out.BaselineScore = &base
			out.ScoreDelta = &delta
		}
	}

	return out, nil
}

// scoreDataset runs the per-dataset part of the pipeline. The mode
// decision is made once per dataset and never mixed within a scoring run.
func (p *Pipeline) scoreDataset(csvPath, mapName string) (phases []PhaseResult, skipped []string, sampleRate float64, fftOK bool, err error) {
	readings, err := ingest.LoadCSV(csvPath, mapName, p.Settings)
	if err != nil {
		return nil, nil, 0, false, err
	}

	counts := make(map[string]int)
	for _, r := range readings {
		counts[r.Phase]++
	}

	series := ingest.Normalize(readings, p.Settings)

	var allTimes []time.Time
	for _, s := range series {
		allTimes = append(allTimes, s.Times...)
	}
	sampleRate = signal.EstimateSampleRate(allTimes)
	fftOK = signal.FFTIsValid(sampleRate, p.Settings.FundamentalHz)

	for _, s := range series {
		valid := counts[s.Phase]
		if valid < minScorableSamples {
			log.Warn().
				Str("phase", s.Phase).
				Int("valid_samples", valid).
				Msg("insufficient samples; phase excluded from scoring")
			skipped = append(skipped, s.Phase)
			continue
		}
		phases = append(phases, p.scorePhase(s, valid, sampleRate, fftOK))
	}
	return phases, skipped, sampleRate, fftOK, nil
}

func (p *Pipeline) scorePhase(s ingest.Series, valid int, sampleRate float64, fftOK bool) PhaseResult {
	ph := PhaseResult{
		Phase:        s.Phase,
		Series:       s,
		ValidSamples: valid,
		Crest:        signal.CrestFactor(s.Values),
		Variability:  signal.VariabilityPercent(s.Values),
	}

	if fftOK {
		ph.Spectrum = signal.Harmonics(s.Values, sampleRate, p.Settings)
		ph.THDPct = signal.THDPercent(ph.Spectrum)
		ph.TriplenPct = signal.TriplenIndexPercent(ph.Spectrum)
		ph.FifthPct = signal.HarmonicRatioPercent(ph.Spectrum, 5)
		ph.Risk = risk.Score(risk.WaveformMetrics{
			THDPct:     ph.THDPct,
			TriplenPct: ph.TriplenPct,
			FifthPct:   ph.FifthPct,
		}, p.Thresholds)
		ph.Summary = fmt.Sprintf(
			"Phase %s: Risk %d/100 (%s) | THD %.1f%% | Triplen %.1f%% | 5th %.1f%% | Crest %.2f | Variability %.1f%%",
			ph.Phase, ph.Risk.Score, ph.Risk.Band, ph.THDPct, ph.TriplenPct, ph.FifthPct, ph.Crest, ph.Variability)
		return ph
	}

	ph.Risk = risk.Score(risk.TrendMetrics{
		Crest:          ph.Crest,
		VariabilityPct: ph.Variability,
	}, p.Thresholds)
	ph.Summary = fmt.Sprintf(
		"Phase %s: Risk %d/100 (%s) | Crest %.2f | Variability %.1f%%",
		ph.Phase, ph.Risk.Score, ph.Risk.Band, ph.Crest, ph.Variability)
	return ph
}

// baselineScore runs the full scoring sub-pipeline on the baseline dataset
// and returns its facility score.
func (p *Pipeline) baselineScore(csvPath, mapName string) (int, error) {
	phases, _, _, _, err := p.scoreDataset(csvPath, mapName)
	if err != nil {
		return 0, err
	}
	return facilityScore(phases), nil
}

// facilityScore is the rounded arithmetic mean of the phase scores.
// Rounding is half-up (ties away from zero); no phases means 0.
func facilityScore(phases []PhaseResult) int {
	if len(phases) == 0 {
		return 0
	}
	sum := 0
	for _, ph := range phases {
		sum += ph.Risk.Score
	}
	return int(math.Round(float64(sum) / float64(len(phases))))
}

func executiveVerdict(score int) string {
	switch {
	case score <= 30:
		return "No immediate power-quality risk detected. Observed load behavior is consistent with stable operation."
	case score <= 60:
		return "Early warning indicators detected. Continued monitoring recommended to prevent escalation during peak demand or future expansion."
	}
	return "Elevated power-quality risk detected. Observed conditions may contribute to equipment stress if left unaddressed."
}
