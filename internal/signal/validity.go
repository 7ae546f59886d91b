// Package signal derives frequency-domain and time-domain indicators from
// normalized current series.
package signal

import (
	"sort"
	"time"
)

// fftOversampleFactor is the conservative margin the sampling rate must
// hold over the fundamental before waveform FFT analysis is trusted.
// Harmonic orders up to the 13th must be resolvable without aliasing, and
// exported data often has irregular cadence, so this sits well above the
// Nyquist 2x.
const fftOversampleFactor = 20.0

// EstimateSampleRate estimates the sampling rate in Hz from the median
// spacing of the time grid. The median is deliberate: robust against
// outlier gaps from irregular exports. Duplicate timestamps (one row per
// phase on a shared grid) are collapsed first. Returns 0 when fewer than 3
// distinct timestamps exist or the median spacing is not positive.
func EstimateSampleRate(times []time.Time) float64 {
	ts := make([]time.Time, len(times))
	copy(ts, times)
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })

	uniq := ts[:0]
	for i, t := range ts {
		if i == 0 || !t.Equal(uniq[len(uniq)-1]) {
			uniq = append(uniq, t)
		}
	}
	if len(uniq) < 3 {
		return 0
	}

	deltas := make([]float64, 0, len(uniq)-1)
	for i := 1; i < len(uniq); i++ {
		deltas = append(deltas, uniq[i].Sub(uniq[i-1]).Seconds())
	}
	sort.Float64s(deltas)

	var median float64
	mid := len(deltas) / 2
	if len(deltas)%2 == 1 {
		median = deltas[mid]
	} else {
		median = (deltas[mid-1] + deltas[mid]) / 2
	}
	if median <= 0 {
		return 0
	}
	return 1.0 / median
}

// FFTIsValid reports whether the sampling rate supports waveform FFT
// analysis at the given fundamental frequency. The boundary is inclusive.
func FFTIsValid(sampleRateHz, fundamentalHz float64) bool {
	return sampleRateHz >= fftOversampleFactor*fundamentalHz
}
