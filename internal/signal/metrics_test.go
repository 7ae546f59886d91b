package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTHDPercent(t *testing.T) {
	spec := map[int]float64{1: 10.0, 3: 3.0, 5: 4.0}
	// sqrt(9+16)/10 = 0.5
	assert.InDelta(t, 50.0, THDPercent(spec), 1e-9)
}

func TestTHDPercentPureFundamental(t *testing.T) {
	spec := map[int]float64{1: 5.0, 3: 0, 5: 0, 7: 0}

	assert.Equal(t, 0.0, THDPercent(spec))
	assert.Equal(t, 0.0, TriplenIndexPercent(spec))
	assert.Equal(t, 0.0, HarmonicRatioPercent(spec, 5))
}

func TestMetricsDivisionGuards(t *testing.T) {
	silent := map[int]float64{1: 0, 3: 2.0, 5: 2.0}
	tiny := map[int]float64{1: 1e-13, 3: 2.0}

	for _, spec := range []map[int]float64{silent, tiny} {
		assert.Equal(t, 0.0, THDPercent(spec))
		assert.Equal(t, 0.0, TriplenIndexPercent(spec))
		assert.Equal(t, 0.0, HarmonicRatioPercent(spec, 5))
	}

	zeroMean := []float64{-1.0, 1.0, -1.0, 1.0}
	assert.Equal(t, 0.0, VariabilityPercent(zeroMean))

	assert.Equal(t, 0.0, CrestFactor(nil))
	assert.Equal(t, 0.0, CrestFactor([]float64{0, 0, 0}))
	assert.Equal(t, 0.0, VariabilityPercent(nil))

	for _, v := range []float64{
		THDPercent(silent), TriplenIndexPercent(tiny),
		CrestFactor([]float64{0}), VariabilityPercent(zeroMean),
	} {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestTriplenIndexPercent(t *testing.T) {
	spec := map[int]float64{1: 10.0, 3: 3.0, 5: 4.0, 9: 4.0}
	// triplens only: sqrt(9+16)/10 = 0.5
	assert.InDelta(t, 50.0, TriplenIndexPercent(spec), 1e-9)
}

func TestHarmonicRatioPercent(t *testing.T) {
	spec := map[int]float64{1: 8.0, 5: 1.2}
	assert.InDelta(t, 15.0, HarmonicRatioPercent(spec, 5), 1e-9)
	assert.Equal(t, 0.0, HarmonicRatioPercent(spec, 7))
}

func TestCrestFactor(t *testing.T) {
	// constant signal: peak equals RMS
	assert.InDelta(t, 1.0, CrestFactor([]float64{5, 5, 5, 5}), 1e-9)

	// sinusoid: peak/RMS approaches sqrt(2)
	sig := make([]float64, 1000)
	for i := range sig {
		sig[i] = math.Sin(2 * math.Pi * float64(i) / 100)
	}
	assert.InDelta(t, math.Sqrt2, CrestFactor(sig), 0.01)
}

func TestVariabilityPercent(t *testing.T) {
	assert.Equal(t, 0.0, VariabilityPercent([]float64{4, 4, 4}))

	// population stddev of {8,12} is 2, mean 10 -> 20%
	assert.InDelta(t, 20.0, VariabilityPercent([]float64{8, 12}), 1e-9)

	// sign of the mean must not matter
	assert.InDelta(t, 20.0, VariabilityPercent([]float64{-8, -12}), 1e-9)
}
