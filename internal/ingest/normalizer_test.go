package ingest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pq_analyzer_go/internal/config"
)

func readingAt(base time.Time, offset time.Duration, phase string, current float64) Reading {
	return Reading{Timestamp: base.Add(offset), Phase: phase, Current: current}
}

func TestNormalizeUniformGrid(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []Reading{
		readingAt(base, 0, "A", 1.0),
		readingAt(base, 1*time.Second, "A", 2.0),
		readingAt(base, 2*time.Second, "A", 3.0),
	}

	series := Normalize(readings, config.Default())
	require.Len(t, series, 1)

	s := series[0]
	assert.Equal(t, "A", s.Phase)
	require.Len(t, s.Values, 3)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, s.Values)
	for i := 1; i < len(s.Times); i++ {
		assert.Equal(t, time.Second, s.Times[i].Sub(s.Times[i-1]))
	}
}

func TestNormalizeBucketMean(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []Reading{
		readingAt(base, 0, "A", 1.0),
		readingAt(base, 200*time.Millisecond, "A", 3.0), // same 1s bucket
		readingAt(base, 1*time.Second, "A", 5.0),
	}

	series := Normalize(readings, config.Default())
	require.Len(t, series, 1)
	require.Len(t, series[0].Values, 2)
	assert.Equal(t, 2.0, series[0].Values[0])
	assert.Equal(t, 5.0, series[0].Values[1])
}

func TestNormalizeInterpolatesInteriorGaps(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []Reading{
		readingAt(base, 0, "A", 1.0),
		readingAt(base, 3*time.Second, "A", 4.0), // buckets 1 and 2 missing
	}

	series := Normalize(readings, config.Default())
	require.Len(t, series, 1)
	require.Len(t, series[0].Values, 4)
	assert.InDeltaSlice(t, []float64{1.0, 2.0, 3.0, 4.0}, series[0].Values, 1e-9)
}

func TestNormalizeSeparatesPhases(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []Reading{
		readingAt(base, 0, "B", 10.0),
		readingAt(base, 0, "A", 1.0),
		readingAt(base, 1*time.Second, "A", 2.0),
		readingAt(base, 1*time.Second, "B", 20.0),
	}

	series := Normalize(readings, config.Default())
	require.Len(t, series, 2)
	// deterministic phase order
	assert.Equal(t, "A", series[0].Phase)
	assert.Equal(t, "B", series[1].Phase)
	assert.Equal(t, []float64{1.0, 2.0}, series[0].Values)
	assert.Equal(t, []float64{10.0, 20.0}, series[1].Values)
}

func TestNormalizeConfigurableCadence(t *testing.T) {
	cfg := config.Default()
	cfg.ResampleSeconds = 2.0

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []Reading{
		readingAt(base, 0, "A", 1.0),
		readingAt(base, 1*time.Second, "A", 3.0), // same 2s bucket
		readingAt(base, 2*time.Second, "A", 5.0),
	}

	series := Normalize(readings, cfg)
	require.Len(t, series, 1)
	require.Len(t, series[0].Values, 2)
	assert.Equal(t, 2.0, series[0].Values[0])
	assert.Equal(t, 5.0, series[0].Values[1])
}

func TestInterpolateGapsBoundaryFill(t *testing.T) {
	nan := math.NaN()
	values := []float64{nan, nan, 2.0, nan, 6.0, nan}
	interpolateGaps(values)
	assert.InDeltaSlice(t, []float64{2.0, 2.0, 2.0, 4.0, 6.0, 6.0}, values, 1e-9)
}

func TestInterpolateGapsAllMissing(t *testing.T) {
	values := []float64{math.NaN(), math.NaN()}
	interpolateGaps(values)
	for _, v := range values {
		assert.True(t, math.IsNaN(v), "all-NaN input stays NaN")
	}
}
