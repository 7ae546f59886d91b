package ingest

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/user/pq_analyzer_go/internal/config"
)

// minStableSamples is the series length below which frequency-domain
// analysis becomes unstable.
const minStableSamples = 32

// Series is one phase's current on a uniform time grid with no internal
// gaps.
type Series struct {
	Phase  string
	Times  []time.Time
	Values []float64
}

// Normalize resamples each phase's readings onto a fixed-width grid.
// Values within a bucket are averaged; missing buckets are filled by linear
// interpolation, with nearest-value fill at both boundaries. Phases come
// back in the deterministic A/B/C/N-then-lexical order.
func Normalize(readings []Reading, cfg config.Settings) []Series {
	step := time.Duration(cfg.ResampleSeconds * float64(time.Second))
	if step <= 0 {
		step = time.Second
	}

	byPhase := make(map[string][]Reading)
	for _, r := range readings {
		byPhase[r.Phase] = append(byPhase[r.Phase], r)
	}

	phases := make([]string, 0, len(byPhase))
	for p := range byPhase {
		phases = append(phases, p)
	}
	sort.Slice(phases, func(i, j int) bool { return PhaseLess(phases[i], phases[j]) })

	out := make([]Series, 0, len(phases))
	for _, phase := range phases {
		s := resamplePhase(phase, byPhase[phase], step)
		if len(s.Values) < minStableSamples {
			log.Warn().
				Str("phase", phase).
				Int("samples", len(s.Values)).
				Msg("few samples after resample; FFT may be unstable")
		}
		out = append(out, s)
	}
	return out
}

func resamplePhase(phase string, readings []Reading, step time.Duration) Series {
	stepNanos := step.Nanoseconds()

	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	minBucket, maxBucket := int64(math.MaxInt64), int64(math.MinInt64)
	for _, r := range readings {
		b := r.Timestamp.UnixNano() / stepNanos
		sums[b] += r.Current
		counts[b]++
		if b < minBucket {
			minBucket = b
		}
		if b > maxBucket {
			maxBucket = b
		}
	}
	if len(counts) == 0 {
		return Series{Phase: phase}
	}

	n := int(maxBucket-minBucket) + 1
	times := make([]time.Time, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		b := minBucket + int64(i)
		times[i] = time.Unix(0, b*stepNanos).UTC()
		if c := counts[b]; c > 0 {
			values[i] = sums[b] / float64(c)
		} else {
			values[i] = math.NaN()
		}
	}

	interpolateGaps(values)
	return Series{Phase: phase, Times: times, Values: values}
}

// interpolateGaps fills NaN runs in place: interior runs linearly between
// the surrounding known values, boundary runs with the nearest known value.
// A slice with no known value at all is left untouched.
func interpolateGaps(values []float64) {
	n := len(values)
	first, last := -1, -1
	for i, v := range values {
		if !math.IsNaN(v) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return
	}

	for i := 0; i < first; i++ {
		values[i] = values[first]
	}
	for i := last + 1; i < n; i++ {
		values[i] = values[last]
	}

	i := first
	for i <= last {
		if !math.IsNaN(values[i]) {
			i++
			continue
		}
		// run of NaNs from i to j-1, bounded by known values on both sides
		j := i
		for math.IsNaN(values[j]) {
			j++
		}
		lo, hi := values[i-1], values[j]
		span := float64(j - (i - 1))
		for k := i; k < j; k++ {
			frac := float64(k-(i-1)) / span
			values[k] = lo + (hi-lo)*frac
		}
		i = j
	}
}
