// Package climate declares the rain-gage collaborator contract (spec §6).
// Gage interpolation and file parsing are out of scope (spec §1); this
// package carries only the interface the runoff step controller consumes
// and a minimal in-memory implementation useful for tests and warm paths
// that don't need real gage-file interpolation.
package climate

import "time"

// Gage supplies precipitation at a point in time and reports when it will
// next change, so the step controller can bound its time step (spec §4.5).
type Gage interface {
	GetPrecip(t time.Time) (rain, snow float64)
	GetNextRainDate(t time.Time) time.Time
	IsRaining(t time.Time) bool
}

// Series is a minimal stepped-constant Gage backed by an in-memory
// timestamped series, sufficient for tests and for driving the core without
// the full gage-interpolation collaborator.
type Series struct {
	Times []time.Time
	Rain  []float64
	Snow  []float64
}

var _ Gage = (*Series)(nil)

func (s *Series) indexAt(t time.Time) int {
	idx := -1
	for i, ti := range s.Times {
		if !ti.After(t) {
			idx = i
		} else {
			break
		}
	}
	return idx
}

func (s *Series) GetPrecip(t time.Time) (float64, float64) {
	i := s.indexAt(t)
	if i < 0 {
		return 0, 0
	}
	return s.Rain[i], s.Snow[i]
}

func (s *Series) IsRaining(t time.Time) bool {
	r, _ := s.GetPrecip(t)
	return r > 0
}

func (s *Series) GetNextRainDate(t time.Time) time.Time {
	for i, ti := range s.Times {
		if ti.After(t) && s.Rain[i] > 0 {
			return ti
		}
	}
	return t.Add(365 * 24 * time.Hour)
}
