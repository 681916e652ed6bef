package climate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func fixtureSeries() *Series {
	return &Series{
		Times: []time.Time{base, base.Add(10 * time.Minute), base.Add(20 * time.Minute)},
		Rain:  []float64{0.01, 0, 0.02},
		Snow:  []float64{0, 0, 0},
	}
}

func TestSeries_GetPrecip_HoldsLastValueUntilNextTimestamp(t *testing.T) {
	s := fixtureSeries()
	rain, snow := s.GetPrecip(base.Add(5 * time.Minute))
	assert.Equal(t, 0.01, rain)
	assert.Equal(t, 0.0, snow)
}

func TestSeries_GetPrecip_BeforeFirstTimestampReturnsZero(t *testing.T) {
	s := fixtureSeries()
	rain, snow := s.GetPrecip(base.Add(-time.Minute))
	assert.Zero(t, rain)
	assert.Zero(t, snow)
}

func TestSeries_GetPrecip_ExactTimestampUsesThatEntry(t *testing.T) {
	s := fixtureSeries()
	rain, _ := s.GetPrecip(base.Add(20 * time.Minute))
	assert.Equal(t, 0.02, rain)
}

func TestSeries_IsRaining_TrueOnlyWhenCurrentRateIsPositive(t *testing.T) {
	s := fixtureSeries()
	assert.True(t, s.IsRaining(base))
	assert.False(t, s.IsRaining(base.Add(10*time.Minute)))
}

func TestSeries_GetNextRainDate_SkipsZeroEntriesAndFindsNextPositive(t *testing.T) {
	s := fixtureSeries()
	got := s.GetNextRainDate(base.Add(10 * time.Minute))
	assert.Equal(t, base.Add(20*time.Minute), got)
}

func TestSeries_GetNextRainDate_FarFutureWhenNoMoreRainScheduled(t *testing.T) {
	s := fixtureSeries()
	got := s.GetNextRainDate(base.Add(20 * time.Minute))
	assert.True(t, got.After(base.Add(365*24*time.Hour-time.Second)))
}
