package ingest

import "time"

// Reading is one canonical row of a vendor export: an instant, a phase
// label, and a current in amps. Readings are immutable once produced.
type Reading struct {
	Timestamp time.Time
	Phase     string
	Current   float64
}

// ColumnMap fixes which vendor CSV columns play the timestamp, current and
// phase roles. Phase may be empty when the export has no phase column.
type ColumnMap struct {
	Timestamp string
	Current   string
	Phase     string
}

// KnownMaps is the registry of vendor column templates selectable by name.
var KnownMaps = map[string]ColumnMap{
	"default":     {Timestamp: "timestamp", Current: "current_a", Phase: "phase"},
	"apc_like":    {Timestamp: "Time", Current: "Current", Phase: "Phase"},
	"vertiv_like": {Timestamp: "Timestamp", Current: "I(A)", Phase: "Phase"},
	"eaton_like":  {Timestamp: "Date/Time", Current: "Current (A)", Phase: "Phase"},
}

// Candidate names for auto-detection, matched case-insensitively.
var (
	timestampCandidates = []string{
		"timestamp", "time", "datetime", "date/time", "date time", "date", "time stamp",
	}
	phaseCandidates = []string{
		// avoid overly-generic single-letter candidates
		"phase", "leg", "line", "pole",
	}
	currentCandidates = []string{
		"current_a", "current", "i(a)", "i (a)", "amps", "amperes", "a", "current (a)",
	}
)

// widePhasePatterns recognize per-phase current columns in wide exports
// like Current_A/Current_B/Current_C or Ia/Ib/Ic.
var widePhasePatterns = []struct {
	Phase    string
	Patterns []string
}{
	{"A", []string{"current_a", "current a", "ia", "i_a", "i(a)_a", "amps_a", "a current"}},
	{"B", []string{"current_b", "current b", "ib", "i_b", "i(a)_b", "amps_b", "b current"}},
	{"C", []string{"current_c", "current c", "ic", "i_c", "i(a)_c", "amps_c", "c current"}},
}

// phaseRank orders phases A, B, C, N ahead of anything else; remaining
// labels sort lexically after them.
func phaseRank(p string) int {
	switch p {
	case "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "N":
		return 3
	}
	return 4
}

// PhaseLess is the deterministic phase ordering used for all output.
func PhaseLess(a, b string) bool {
	ra, rb := phaseRank(a), phaseRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}
