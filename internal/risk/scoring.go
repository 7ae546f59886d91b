// Package risk maps power-quality metrics to a bounded 0-100 score, a
// qualitative band, and ranked human-readable findings.
package risk

import "fmt"

// Band is the qualitative risk band. It is always a pure function of the
// score, never stored independently.
type Band int

const (
	BandSafe Band = iota
	BandMonitor
	BandActionRequired
	BandImmediateRisk
)

func (b Band) String() string {
	switch b {
	case BandSafe:
		return "Safe"
	case BandMonitor:
		return "Monitor"
	case BandActionRequired:
		return "Action Required"
	case BandImmediateRisk:
		return "Immediate Risk"
	}
	return "Unknown"
}

// BandFromScore maps a final integer score to its band. Boundaries are
// inclusive on the lower band: exactly 30 is Safe, 60 Monitor, 80 Action
// Required.
func BandFromScore(score int) Band {
	switch {
	case score <= 30:
		return BandSafe
	case score <= 60:
		return BandMonitor
	case score <= 80:
		return BandActionRequired
	}
	return BandImmediateRisk
}

// maxTopRisks caps the ranked top-risk tags per result.
const maxTopRisks = 3

// Result is one phase's risk assessment.
type Result struct {
	Score    int
	Band     Band
	Findings []string
	TopRisks []string
}

// contribution is one metric category's outcome: points plus optional
// finding and top-risk texts when a threshold was breached.
type contribution struct {
	points  int
	finding string
	topRisk string
}

// Metrics is the tagged input to Score: either WaveformMetrics (FFT mode)
// or TrendMetrics (low sample rate). The two paths are mutually exclusive
// within one scoring run.
type Metrics interface {
	contributions(t Thresholds) []contribution
}

// WaveformMetrics carries the frequency-domain indicators.
type WaveformMetrics struct {
	THDPct     float64
	TriplenPct float64
	FifthPct   float64
}

// TrendMetrics carries the time-domain indicators used when the sampling
// rate cannot support FFT analysis.
type TrendMetrics struct {
	Crest          float64
	VariabilityPct float64
}

// Score runs a metrics set through the shared contribution/clamp/band
// path. Findings and top risks keep insertion order; at most three top
// risks are retained.
func Score(m Metrics, t Thresholds) Result {
	total := 0
	var findings, top []string
	for _, c := range m.contributions(t) {
		total += c.points
		if c.finding != "" {
			findings = append(findings, c.finding)
		}
		if c.topRisk != "" {
			top = append(top, c.topRisk)
		}
	}
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	if len(top) > maxTopRisks {
		top = top[:maxTopRisks]
	}
	return Result{
		Score:    total,
		Band:     BandFromScore(total),
		Findings: findings,
		TopRisks: top,
	}
}

func (m WaveformMetrics) contributions(t Thresholds) []contribution {
	out := make([]contribution, 0, 3)

	// THD (0-40)
	switch {
	case m.THDPct >= t.THDCritical:
		out = append(out, contribution{
			points:  40,
			finding: fmt.Sprintf("THD is critical (%.1f%%). Elevated transformer heating and nuisance trips are more likely.", m.THDPct),
			topRisk: "High THD -> overheating/nuisance trips",
		})
	case m.THDPct >= t.THDWarn:
		out = append(out, contribution{
			points:  25,
			finding: fmt.Sprintf("THD is elevated (%.1f%%). Monitor; mitigation may be needed if persistent.", m.THDPct),
			topRisk: "Elevated THD trend",
		})
	default:
		out = append(out, contribution{points: 10})
	}

	// Triplen (0-35)
	switch {
	case m.TriplenPct >= t.TriplenCritical:
		out = append(out, contribution{
			points:  35,
			finding: fmt.Sprintf("Triplen index is critical (%.1f%%). Neutral overheating/fire risk elevated under non-linear loading.", m.TriplenPct),
			topRisk: "Triplen harmonics -> neutral overheating risk",
		})
	case m.TriplenPct >= t.TriplenWarn:
		out = append(out, contribution{
			points:  20,
			finding: fmt.Sprintf("Triplen index is high (%.1f%%). Neutral loading risk rising.", m.TriplenPct),
			topRisk: "Triplen harmonics trending high",
		})
	default:
		out = append(out, contribution{points: 8})
	}

	// 5th harmonic (0-25)
	switch {
	case m.FifthPct >= t.FifthCritical:
		out = append(out, contribution{
			points:  25,
			finding: fmt.Sprintf("5th harmonic is critical (%.1f%% of fundamental). Capacitor/UPS stress risk elevated.", m.FifthPct),
			topRisk: "5th harmonic -> capacitor/UPS stress",
		})
	case m.FifthPct >= t.FifthWarn:
		out = append(out, contribution{
			points:  15,
			finding: fmt.Sprintf("5th harmonic is elevated (%.1f%% of fundamental).", m.FifthPct),
			topRisk: "5th harmonic elevated",
		})
	default:
		out = append(out, contribution{points: 5})
	}

	return out
}

func (m TrendMetrics) contributions(t Thresholds) []contribution {
	out := make([]contribution, 0, 2)

	// Crest factor (0-55)
	switch {
	case m.Crest >= t.CrestCritical:
		out = append(out, contribution{
			points:  55,
			finding: fmt.Sprintf("Crest factor is critical (%.2f). Strong evidence of pulsed non-linear currents and higher RMS heating.", m.Crest),
			topRisk: "High crest factor -> pulsed non-linear load risk",
		})
	case m.Crest >= t.CrestWarn:
		out = append(out, contribution{
			points:  35,
			finding: fmt.Sprintf("Crest factor is elevated (%.2f). Indicates non-linear load behavior.", m.Crest),
			topRisk: "Elevated crest factor trend",
		})
	default:
		out = append(out, contribution{points: 15})
	}

	// Variability (0-45)
	switch {
	case m.VariabilityPct >= t.VariabilityCritical:
		out = append(out, contribution{
			points:  45,
			finding: fmt.Sprintf("Current variability is critical (%.1f%%). Strong non-linear/pulsed load signature; harmonic risk elevated.", m.VariabilityPct),
			topRisk: "High variability -> harmonic risk signature",
		})
	case m.VariabilityPct >= t.VariabilityWarn:
		out = append(out, contribution{
			points:  25,
			finding: fmt.Sprintf("Current variability is elevated (%.1f%%). Non-linear load behavior likely.", m.VariabilityPct),
			topRisk: "Variability trending high",
		})
	default:
		out = append(out, contribution{points: 10})
	}

	return out
}
