package signal

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/user/pq_analyzer_go/internal/config"
)

// minFFTSamples is the shortest series the extractor will transform.
const minFFTSamples = 32

// Harmonics returns the relative amplitude at each configured harmonic
// order of the fundamental. The signal is DC-removed and Hann-windowed
// before the real FFT; each order reports the magnitude of the bin nearest
// h*fundamental. Degenerate inputs (short series, non-positive rate) yield
// an all-zero spectrum rather than an error.
func Harmonics(sig []float64, sampleRateHz float64, cfg config.Settings) map[int]float64 {
	x := make([]float64, 0, len(sig))
	for _, v := range sig {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			x = append(x, v)
		}
	}

	n := len(x)
	if n < minFFTSamples || sampleRateHz <= 0 {
		return zeroSpectrum(cfg.Harmonics)
	}

	mu := mean(x)
	for i := range x {
		x[i] -= mu
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	window.Hann(w)

	windowSum := 0.0
	for i := range x {
		x[i] *= w[i]
		windowSum += w[i]
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, x)

	mags := make([]float64, len(coeffs))
	norm := windowSum / 2
	if norm <= 1e-12 {
		norm = float64(n)
	}
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c) / norm
	}

	out := make(map[int]float64, len(cfg.Harmonics))
	for _, h := range cfg.Harmonics {
		target := float64(h) * cfg.FundamentalHz
		idx := int(math.Round(target * float64(n) / sampleRateHz))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(mags) {
			idx = len(mags) - 1
		}
		out[h] = mags[idx]
	}
	return out
}

func zeroSpectrum(orders []int) map[int]float64 {
	out := make(map[int]float64, len(orders))
	for _, h := range orders {
		out[h] = 0
	}
	return out
}
