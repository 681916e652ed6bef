// Package runoffstep implements the wet/dry runoff step controller of spec
// §4.5: step-size selection, the runoff interface file, and outfall runon
// re-routing (§4.7).
package runoffstep

import (
	"time"

	"github.com/maseology/swmmcore/climate"
	"github.com/maseology/swmmcore/collab"
	"github.com/maseology/swmmcore/subcatch"
)

// Controller selects the runoff time step (spec §4.5). It only computes step
// lengths; it does not choose between the runoff interface file and the
// live §4.3 engine.
type Controller struct {
	WetStep time.Duration
	DryStep time.Duration
}

// NextStep computes maxStep (spec §4.5): the smaller of DryStep, the time
// to the next evaporation change, and the time to the next rain change
// across every gage.
func (c Controller) NextStep(t time.Time, gages []climate.Gage, nextEvapChange time.Time) time.Duration {
	max := c.DryStep
	if d := nextEvapChange.Sub(t); d > 0 && d < max {
		max = d
	}
	for _, g := range gages {
		if d := g.GetNextRainDate(t).Sub(t); d > 0 && d < max {
			max = d
		}
	}
	return max
}

// IsWet decides between WetStep and DryStep (spec §4.5): any gage raining,
// any snowpack non-empty, any subcatchment with active runoff, or any LID
// wet forces the shorter WetStep.
func (c Controller) IsWet(t time.Time, gages []climate.Gage, subs []*subcatch.Subcatchment, lids []collab.LID) bool {
	for _, g := range gages {
		if g.IsRaining(t) {
			return true
		}
	}
	for _, s := range subs {
		if s.NewSnowDepth > 0 || s.NewRunoff > 0 {
			return true
		}
	}
	for _, l := range lids {
		if l != nil && l.GetStoredVolume() > 0 {
			return true
		}
	}
	return false
}

// Step picks the step duration for time t, clamped so it never runs past
// totalDuration (spec §4.5 "clamp step so currentTime + step <= totalDuration").
func (c Controller) Step(t, totalEnd time.Time, gages []climate.Gage, subs []*subcatch.Subcatchment, lids []collab.LID, nextEvapChange time.Time) time.Duration {
	max := c.NextStep(t, gages, nextEvapChange)
	step := c.DryStep
	if c.IsWet(t, gages, subs, lids) {
		step = c.WetStep
	}
	if step > max {
		step = max
	}
	if t.Add(step).After(totalEnd) {
		step = totalEnd.Sub(t)
	}
	if step < 0 {
		step = 0
	}
	return step
}
