package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandFromScoreBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Band
	}{
		{0, BandSafe},
		{30, BandSafe},
		{31, BandMonitor},
		{60, BandMonitor},
		{61, BandActionRequired},
		{80, BandActionRequired},
		{81, BandImmediateRisk},
		{100, BandImmediateRisk},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BandFromScore(c.score), "score %d", c.score)
	}
}

func TestScoreWaveformQuiet(t *testing.T) {
	r := Score(WaveformMetrics{THDPct: 2.0, TriplenPct: 1.0, FifthPct: 0.5}, DefaultThresholds())

	// base contributions only: 10 + 8 + 5
	assert.Equal(t, 23, r.Score)
	assert.Equal(t, BandSafe, r.Band)
	assert.Empty(t, r.Findings)
	assert.Empty(t, r.TopRisks)
}

func TestScoreWaveformAllCritical(t *testing.T) {
	r := Score(WaveformMetrics{THDPct: 25.0, TriplenPct: 35.0, FifthPct: 18.0}, DefaultThresholds())

	assert.Equal(t, 100, r.Score)
	assert.Equal(t, BandImmediateRisk, r.Band)
	assert.Len(t, r.Findings, 3)
	assert.Len(t, r.TopRisks, 3)
}

func TestScoreWaveformCriticalTriplen(t *testing.T) {
	r := Score(WaveformMetrics{THDPct: 2.0, TriplenPct: 31.0, FifthPct: 0.5}, DefaultThresholds())

	// 10 + 35 + 5
	assert.Equal(t, 50, r.Score)
	assert.Equal(t, BandMonitor, r.Band)

	require.Len(t, r.Findings, 1)
	assert.Contains(t, strings.ToLower(r.Findings[0]), "neutral overheating")
	require.Len(t, r.TopRisks, 1)
	assert.Contains(t, strings.ToLower(r.TopRisks[0]), "neutral overheating")
}

func TestScoreWaveformThresholdBoundariesInclusive(t *testing.T) {
	th := DefaultThresholds()

	warn := Score(WaveformMetrics{THDPct: 15.0, TriplenPct: 20.0, FifthPct: 12.0}, th)
	assert.Equal(t, 25+20+15, warn.Score)

	crit := Score(WaveformMetrics{THDPct: 20.0, TriplenPct: 30.0, FifthPct: 15.0}, th)
	assert.Equal(t, 100, crit.Score)
}

func TestScoreTrend(t *testing.T) {
	th := DefaultThresholds()

	quiet := Score(TrendMetrics{Crest: 1.4, VariabilityPct: 5.0}, th)
	assert.Equal(t, 25, quiet.Score)
	assert.Equal(t, BandSafe, quiet.Band)

	warn := Score(TrendMetrics{Crest: 2.6, VariabilityPct: 30.0}, th)
	assert.Equal(t, 60, warn.Score)
	assert.Equal(t, BandMonitor, warn.Band)

	crit := Score(TrendMetrics{Crest: 3.5, VariabilityPct: 55.0}, th)
	assert.Equal(t, 100, crit.Score)
	assert.Equal(t, BandImmediateRisk, crit.Band)
	assert.Len(t, crit.Findings, 2)
}

func TestScoreBoundedForExtremeInputs(t *testing.T) {
	th := DefaultThresholds()
	extremes := []Metrics{
		WaveformMetrics{THDPct: 1e9, TriplenPct: 1e9, FifthPct: 1e9},
		WaveformMetrics{},
		TrendMetrics{Crest: 1e9, VariabilityPct: 1e9},
		TrendMetrics{},
	}
	for _, m := range extremes {
		r := Score(m, th)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, 100)
		assert.LessOrEqual(t, len(r.TopRisks), 3)
	}
}

func TestScoreFindingsKeepInsertionOrder(t *testing.T) {
	// all three categories breach: THD first, triplen second, 5th third
	r := Score(WaveformMetrics{THDPct: 25.0, TriplenPct: 35.0, FifthPct: 18.0}, DefaultThresholds())

	require.Len(t, r.Findings, 3)
	assert.Contains(t, r.Findings[0], "THD")
	assert.Contains(t, r.Findings[1], "Triplen")
	assert.Contains(t, r.Findings[2], "5th")
}

func TestBandString(t *testing.T) {
	assert.Equal(t, "Safe", BandSafe.String())
	assert.Equal(t, "Monitor", BandMonitor.String())
	assert.Equal(t, "Action Required", BandActionRequired.String())
	assert.Equal(t, "Immediate Risk", BandImmediateRisk.String())
}
