// Package recommend derives mitigation recommendations from the same
// threshold boundaries that drive scoring. Rules are checked in a fixed
// order (triplen, 5th harmonic, THD for waveform mode; crest, variability
// for trend mode) so output is deterministic.
package recommend

import "github.com/user/pq_analyzer_go/internal/risk"

// Waveform returns recommendations for frequency-domain metrics.
func Waveform(thdPct, triplenPct, fifthPct float64, t risk.Thresholds) []string {
	var recs []string

	if triplenPct >= t.TriplenCritical {
		recs = append(recs, "Priority: Evaluate active harmonic filtering focused on triplen mitigation; verify neutral conductor sizing and thermal margins.")
	} else if triplenPct >= t.TriplenWarn {
		recs = append(recs, "Trend triplen harmonics; review neutral loading during peak IT load windows and plan mitigation if persistent.")
	}

	if fifthPct >= t.FifthCritical {
		recs = append(recs, "Priority: Evaluate detuned capacitor banks / filtering tuned for 5th harmonic to reduce capacitor and UPS stress.")
	} else if fifthPct >= t.FifthWarn {
		recs = append(recs, "Inspect capacitor bank health and reactive compensation settings; elevated 5th harmonic can accelerate wear.")
	}

	if thdPct >= t.THDCritical {
		recs = append(recs, "Priority: Perform a power quality audit; implement mitigation to reduce THD and associated transformer heating.")
	} else if thdPct >= t.THDWarn {
		recs = append(recs, "Monitor THD and thermal loading; consider mitigation if persistent during peak periods.")
	}

	if len(recs) == 0 {
		recs = append(recs, "No urgent mitigation required based on thresholds; continue periodic monitoring.")
	}
	return recs
}

// Trend returns recommendations for time-domain metrics.
func Trend(crest, variabilityPct float64, t risk.Thresholds) []string {
	var recs []string

	if crest >= t.CrestCritical {
		recs = append(recs, "Priority: Investigate non-linear load contributions (UPS rectifiers/SMPS/LED drivers). Consider harmonic filtering feasibility study.")
	} else if crest >= t.CrestWarn {
		recs = append(recs, "Crest factor elevated; review load mix and UPS operating mode. Consider targeted power quality measurements.")
	}

	if variabilityPct >= t.VariabilityCritical {
		recs = append(recs, "Priority: Current variability indicates pulsed load behavior; schedule a power quality capture (true waveform) during peak load.")
	} else if variabilityPct >= t.VariabilityWarn {
		recs = append(recs, "Trend current variability over time; investigate spikes and correlate with load changes and breaker events.")
	}

	if len(recs) == 0 {
		recs = append(recs, "No urgent mitigation required based on trend indicators; continue periodic monitoring.")
	}
	return recs
}

// DedupePreserveOrder removes duplicates keeping first-seen order.
func DedupePreserveOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
