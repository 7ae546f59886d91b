package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pq_analyzer_go/internal/config"
)

// sine samples n points of sum-of-harmonics current at the given rate.
// amps maps harmonic order to amplitude of a 60 Hz fundamental.
func sine(n int, sampleRate float64, amps map[int]float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		for h, a := range amps {
			out[i] += a * math.Sin(2*math.Pi*60.0*float64(h)*t)
		}
	}
	return out
}

func TestHarmonicsDegenerateGuards(t *testing.T) {
	cfg := config.Default()

	short := Harmonics(make([]float64, 16), 1920.0, cfg)
	noRate := Harmonics(sine(2048, 1920.0, map[int]float64{1: 1}), 0, cfg)

	for _, spec := range []map[int]float64{short, noRate} {
		require.Len(t, spec, len(cfg.Harmonics))
		for _, h := range cfg.Harmonics {
			assert.Equal(t, 0.0, spec[h])
		}
	}
}

func TestHarmonicsPureFundamental(t *testing.T) {
	cfg := config.Default()
	// 2048 samples at 1920 Hz hold exactly 64 cycles of 60 Hz: leakage-free
	spec := Harmonics(sine(2048, 1920.0, map[int]float64{1: 1.0}), 1920.0, cfg)

	assert.InDelta(t, 1.0, spec[1], 0.05, "fundamental amplitude should be recovered")
	for _, h := range cfg.Harmonics {
		if h == 1 {
			continue
		}
		assert.Less(t, spec[h], 0.01, "harmonic %d should be silent", h)
	}
}

func TestHarmonicsRecoversInjectedContent(t *testing.T) {
	cfg := config.Default()
	sig := sine(2048, 1920.0, map[int]float64{1: 1.0, 3: 0.4, 5: 0.2})

	spec := Harmonics(sig, 1920.0, cfg)

	assert.InDelta(t, 1.0, spec[1], 0.05)
	assert.InDelta(t, 0.4, spec[3], 0.05)
	assert.InDelta(t, 0.2, spec[5], 0.05)
	assert.Less(t, spec[7], 0.01)
}

func TestHarmonicsRemovesDCOffset(t *testing.T) {
	cfg := config.Default()
	sig := sine(2048, 1920.0, map[int]float64{1: 1.0})
	for i := range sig {
		sig[i] += 100.0
	}

	spec := Harmonics(sig, 1920.0, cfg)
	assert.InDelta(t, 1.0, spec[1], 0.05, "DC offset must not leak into the fundamental")
}

func TestHarmonicsIgnoresNonFiniteSamples(t *testing.T) {
	cfg := config.Default()
	sig := sine(2048, 1920.0, map[int]float64{1: 1.0})
	sig[10] = math.NaN()
	sig[20] = math.Inf(1)

	spec := Harmonics(sig, 1920.0, cfg)
	assert.InDelta(t, 1.0, spec[1], 0.06)
}

func TestHarmonicsCustomOrders(t *testing.T) {
	cfg := config.Default()
	cfg.Harmonics = []int{1, 2, 4}

	spec := Harmonics(sine(2048, 1920.0, map[int]float64{1: 1.0}), 1920.0, cfg)
	require.Len(t, spec, 3)
	_, has3 := spec[3]
	assert.False(t, has3)
}
