package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOldState_CopiesVolumeAndDepthAndZeroesAccumulators(t *testing.T) {
	n := &Node{NewDepth: 2, NewVolume: 200, Inflow: 5, Outflow: 3, LateralInflow: 1, Overflow: 0.5}
	n.Updated = true
	n.SetOldState()

	assert.Equal(t, 2.0, n.OldDepth)
	assert.Equal(t, 200.0, n.OldVolume)
	assert.Equal(t, 2.0, n.OldNetInflow) // 5 - 3 - 0 - 0
	assert.Zero(t, n.LateralInflow)
	assert.Zero(t, n.Inflow)
	assert.Zero(t, n.Outflow)
	assert.Zero(t, n.Overflow)
	assert.False(t, n.Updated)
}

func TestMaxOutflow_BoundsOnStoredVolumePlusInflow(t *testing.T) {
	n := &Node{OldVolume: 600, LateralInflow: 2, Inflow: 3}
	got := n.MaxOutflow(60)
	assert.InDelta(t, 600.0/60+2+3, got, 1e-9)
}

func TestMaxOutflow_ZeroStepIsZero(t *testing.T) {
	n := &Node{OldVolume: 600}
	assert.Zero(t, n.MaxOutflow(0))
}

func TestMaxOutflow_NeverNegative(t *testing.T) {
	n := &Node{OldVolume: 0, LateralInflow: -100}
	assert.Zero(t, n.MaxOutflow(60))
}

func TestVolumeFromDepth_LinearBelowFullDepth(t *testing.T) {
	n := &Node{FullDepth: 10, FullVolume: 1000}
	assert.InDelta(t, 500.0, n.VolumeFromDepth(5), 1e-9)
}

func TestVolumeFromDepth_PondedAboveFullDepth(t *testing.T) {
	n := &Node{FullDepth: 10, FullVolume: 1000, PondingOn: true, PondedArea: 50}
	assert.InDelta(t, 1000+2*50, n.VolumeFromDepth(12), 1e-9)
}

func TestVolumeFromDepth_ClampsWithoutPonding(t *testing.T) {
	n := &Node{FullDepth: 10, FullVolume: 1000, PondingOn: false}
	assert.InDelta(t, 1000.0, n.VolumeFromDepth(12), 1e-9)
}

func TestVolumeFromDepth_UsesStorageCurveWhenPresent(t *testing.T) {
	n := &Node{Type: Storage, Curve: fakeCurve{}}
	assert.InDelta(t, 42.0, n.VolumeFromDepth(3), 1e-9)
}

func TestDepthFromVolume_IsInverseOfVolumeFromDepth(t *testing.T) {
	n := &Node{FullDepth: 10, FullVolume: 1000}
	d := n.DepthFromVolume(n.VolumeFromDepth(6.5))
	assert.InDelta(t, 6.5, d, 1e-9)
}

func TestDepthFromVolume_PondedAboveFullVolume(t *testing.T) {
	n := &Node{FullDepth: 10, FullVolume: 1000, PondingOn: true, PondedArea: 50}
	d := n.DepthFromVolume(1100)
	assert.InDelta(t, 12.0, d, 1e-9)
}

type fakeCurve struct{}

func (fakeCurve) VolumeAt(d float64) float64   { return d * 14 }
func (fakeCurve) DepthAt(v float64) float64    { return v / 14 }
func (fakeCurve) PondedArea(d float64) float64 { return 0 }
