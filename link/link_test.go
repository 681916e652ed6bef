package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOldState_CopiesFlowDepthAndVolume(t *testing.T) {
	l := &Link{NewFlow: 5, NewDepth: 1.2, NewVolume: 300}
	l.SetOldState()
	assert.Equal(t, 5.0, l.OldFlow)
	assert.Equal(t, 1.2, l.OldDepth)
	assert.Equal(t, 300.0, l.OldVolume)
}

func TestSetSetting_ZeroRampAppliesImmediately(t *testing.T) {
	l := &Link{Setting: 0}
	l.SetTargetSetting(1.0)
	l.SetSetting(0)
	assert.Equal(t, 1.0, l.Setting)
}

func TestSetSetting_RampsTowardTargetWithoutOvershoot(t *testing.T) {
	l := &Link{Setting: 0}
	l.SetTargetSetting(1.0)
	l.SetSetting(0.3)
	assert.InDelta(t, 0.3, l.Setting, 1e-9)
	l.SetSetting(0.3)
	assert.InDelta(t, 0.6, l.Setting, 1e-9)
	l.SetSetting(0.3)
	assert.InDelta(t, 0.9, l.Setting, 1e-9)
	l.SetSetting(0.3)
	assert.InDelta(t, 1.0, l.Setting, 1e-9, "ramp must clamp at the target, not overshoot")
}

func TestSetSetting_RampsDownwardToo(t *testing.T) {
	l := &Link{Setting: 1.0}
	l.SetTargetSetting(0.0)
	l.SetSetting(0.4)
	assert.InDelta(t, 0.6, l.Setting, 1e-9)
	l.SetSetting(0.4)
	assert.InDelta(t, 0.2, l.Setting, 1e-9)
	l.SetSetting(0.4)
	assert.InDelta(t, 0.0, l.Setting, 1e-9)
}

func TestSteadyFlow_NonConduitPassesInflowThrough(t *testing.T) {
	l := &Link{Type: Weir}
	got := l.SteadyFlow(10, 2)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestSteadyFlow_NegativeNetFlowClampsToZero(t *testing.T) {
	l := &Link{Type: Conduit, QFull: 50}
	got := l.SteadyFlow(1, 5)
	assert.Zero(t, got)
}

func TestSteadyFlow_CapsAtQFullAndSetsFullDepth(t *testing.T) {
	l := &Link{Type: Conduit, QFull: 10, XS: XSect{FullDepth: 5}}
	got := l.SteadyFlow(20, 0)
	assert.Equal(t, 10.0, got)
	assert.Equal(t, 5.0, l.NewDepth)
}

func TestSteadyFlow_BelowQFullWithoutRatingPassesThrough(t *testing.T) {
	l := &Link{Type: Conduit, QFull: 50, Roughness: 0.015, Slope: 0.01}
	got := l.SteadyFlow(10, 0)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestSteadyFlow_InvertsCrossSectionWhenRatingPresent(t *testing.T) {
	l := &Link{
		Type: Conduit, QFull: 50, Roughness: 0.015, Slope: 0.01,
		XS: XSect{
			FullDepth:   5,
			AreaOfFlow:  func(q, beta float64) float64 { return q / beta }, // trivial linear stand-in
			DepthOfArea: func(a float64) float64 { return a / 10 },
		},
	}
	got := l.SteadyFlow(10, 0)
	assert.InDelta(t, 10.0, got, 1e-9)
	assert.Greater(t, l.NewDepth, 0.0)
}

func TestIsRegulator_ClassifiesLinkTypes(t *testing.T) {
	assert.False(t, Conduit.IsRegulator())
	assert.False(t, Pump.IsRegulator())
	assert.True(t, Orifice.IsRegulator())
	assert.True(t, Weir.IsRegulator())
	assert.True(t, Outlet.IsRegulator())
}
